// Package testutil contains utilities for writing tests.
package testutil

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync/atomic"

	"github.com/icrowley/fake"

	"github.com/ErikKalkoken/spacemap/internal/app"
)

var systemTypes = []app.SystemType{
	app.SystemNeutronStar,
	app.SystemRedStar,
	app.SystemOrangeStar,
	app.SystemBlueStar,
	app.SystemYoungStar,
	app.SystemWhiteDwarf,
	app.SystemBlackHole,
	app.SystemHypergiant,
	app.SystemNebula,
	app.SystemUnstable,
}

var waypointTypes = []app.WaypointType{
	app.WaypointPlanet,
	app.WaypointGasGiant,
	app.WaypointMoon,
	app.WaypointOrbitalStation,
	app.WaypointJumpGate,
	app.WaypointAsteroidField,
	app.WaypointFuelStation,
}

// Factory creates test objects with random but unique values.
type Factory struct {
	counter atomic.Int64
}

func NewFactory() *Factory {
	return &Factory{}
}

// MakeSystem returns a new system. Zero values of the template are filled with random values.
func (f *Factory) MakeSystem(args ...app.System) app.System {
	var x app.System
	if len(args) > 0 {
		x = args[0]
	}
	if x.Symbol.IsZero() {
		n := f.counter.Add(1)
		x.Symbol = app.Symbol{
			Sector: "X1",
			System: fmt.Sprintf("%s%d", strings.ToUpper(fake.CharactersN(2)), n),
		}
	}
	if x.SectorSymbol.IsZero() {
		x.SectorSymbol = x.Symbol.SectorSymbol()
	}
	if x.Type == "" {
		x.Type = systemTypes[rand.IntN(len(systemTypes))]
	}
	if x.X == 0 && x.Y == 0 {
		x.X = rand.IntN(20_000) - 10_000
		x.Y = rand.IntN(20_000) - 10_000
	}
	if x.Waypoints == nil {
		for range rand.IntN(4) + 1 {
			x.Waypoints = append(x.Waypoints, f.MakeWaypoint(x.Symbol))
		}
	}
	return x
}

// MakeSystems returns n new systems.
func (f *Factory) MakeSystems(n int) []app.System {
	oo := make([]app.System, n)
	for i := range n {
		oo[i] = f.MakeSystem()
	}
	return oo
}

// MakeWaypoint returns a new waypoint belonging to system.
func (f *Factory) MakeWaypoint(system app.Symbol) app.Waypoint {
	n := f.counter.Add(1)
	return app.Waypoint{
		Symbol: app.Symbol{
			Sector:   system.Sector,
			System:   system.System,
			Waypoint: fmt.Sprintf("%s%d", strings.ToUpper(fake.CharactersN(1)), n),
		},
		Type: waypointTypes[rand.IntN(len(waypointTypes))],
		X:    rand.IntN(200) - 100,
		Y:    rand.IntN(200) - 100,
	}
}

// MakeSnapshot returns a new snapshot with n systems.
func (f *Factory) MakeSnapshot(n int) *app.Snapshot {
	return app.NewSnapshot(f.MakeSystems(n))
}

// MakeAgent returns a new agent.
func (f *Factory) MakeAgent() app.Agent {
	return app.Agent{
		AccountID:       fake.DigitsN(12),
		Symbol:          strings.ToUpper(fake.CharactersN(6)),
		Headquarters:    f.MakeWaypoint(f.MakeSystem().Symbol).Symbol,
		Credits:         int64(rand.IntN(1_000_000)),
		StartingFaction: "COSMIC",
		ShipCount:       rand.IntN(5) + 1,
	}
}
