package app

import (
	"math"
	"strings"
)

// SystemType is the type of the star of a system.
// Unknown types are kept as reported by the API.
type SystemType string

const (
	SystemNeutronStar SystemType = "NEUTRON_STAR"
	SystemRedStar     SystemType = "RED_STAR"
	SystemOrangeStar  SystemType = "ORANGE_STAR"
	SystemBlueStar    SystemType = "BLUE_STAR"
	SystemYoungStar   SystemType = "YOUNG_STAR"
	SystemWhiteDwarf  SystemType = "WHITE_DWARF"
	SystemBlackHole   SystemType = "BLACK_HOLE"
	SystemHypergiant  SystemType = "HYPERGIANT"
	SystemNebula      SystemType = "NEBULA"
	SystemUnstable    SystemType = "UNSTABLE"
)

// Display returns a human readable name, e.g. "Red Star".
func (t SystemType) Display() string {
	return displayTag(string(t))
}

// WaypointType is the type of a waypoint.
// Unknown types are kept as reported by the API.
type WaypointType string

const (
	WaypointPlanet                WaypointType = "PLANET"
	WaypointGasGiant              WaypointType = "GAS_GIANT"
	WaypointMoon                  WaypointType = "MOON"
	WaypointOrbitalStation        WaypointType = "ORBITAL_STATION"
	WaypointJumpGate              WaypointType = "JUMP_GATE"
	WaypointAsteroidField         WaypointType = "ASTEROID_FIELD"
	WaypointAsteroid              WaypointType = "ASTEROID"
	WaypointEngineeredAsteroid    WaypointType = "ENGINEERED_ASTEROID"
	WaypointAsteroidBase          WaypointType = "ASTEROID_BASE"
	WaypointNebula                WaypointType = "NEBULA"
	WaypointDebrisField           WaypointType = "DEBRIS_FIELD"
	WaypointGravityWell           WaypointType = "GRAVITY_WELL"
	WaypointArtificialGravityWell WaypointType = "ARTIFICIAL_GRAVITY_WELL"
	WaypointFuelStation           WaypointType = "FUEL_STATION"
)

// Display returns a human readable name, e.g. "Gas Giant".
func (t WaypointType) Display() string {
	return displayTag(string(t))
}

func displayTag(s string) string {
	return Titler.String(strings.ReplaceAll(strings.ToLower(s), "_", " "))
}

// Waypoint is a location inside a system.
// The coordinates are relative to the center of its system.
type Waypoint struct {
	Symbol Symbol       `json:"symbol"`
	Type   WaypointType `json:"type"`
	X      int          `json:"x"`
	Y      int          `json:"y"`
}

// System is a star system of the galaxy.
//
// Systems are values and must be treated as immutable.
// This includes the waypoints slice.
type System struct {
	Symbol       Symbol     `json:"symbol"`
	SectorSymbol Symbol     `json:"sectorSymbol"`
	Type         SystemType `json:"type"`
	X            int        `json:"x"`
	Y            int        `json:"y"`
	Waypoints    []Waypoint `json:"waypoints"`
}

// Distance returns the distance of a system to the center of the galaxy.
func (s System) Distance() float64 {
	return math.Hypot(float64(s.X), float64(s.Y))
}

// Size returns the radius of the system, which is the largest
// absolute coordinate of any of its waypoints.
// Returns 0 for systems without waypoints.
func (s System) Size() float64 {
	var m int
	for _, w := range s.Waypoints {
		m = max(m, abs(w.X), abs(w.Y))
	}
	return float64(m)
}

func (s System) clone() System {
	s2 := s
	if s.Waypoints != nil {
		s2.Waypoints = make([]Waypoint, len(s.Waypoints))
		copy(s2.Waypoints, s.Waypoints)
	}
	return s2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
