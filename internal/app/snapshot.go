package app

import (
	"encoding/json"
	"iter"
)

// Snapshot is the complete collection of systems of the galaxy at a point in time.
//
// A snapshot is immutable. Systems are kept in the order they were received from the API.
// The zero value is an empty snapshot.
type Snapshot struct {
	systems []System
}

// NewSnapshot returns a new snapshot from a copy of systems.
func NewSnapshot(systems []System) *Snapshot {
	s := &Snapshot{systems: make([]System, len(systems))}
	for i, x := range systems {
		s.systems[i] = x.clone()
	}
	return s
}

// Len returns the number of systems in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.systems)
}

// All returns an iterator over all systems in order.
func (s *Snapshot) All() iter.Seq2[int, System] {
	return func(yield func(int, System) bool) {
		if s == nil {
			return
		}
		for i, x := range s.systems {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Systems returns a copy of all systems in order.
func (s *Snapshot) Systems() []System {
	if s == nil {
		return []System{}
	}
	return NewSnapshot(s.systems).systems
}

// Radius returns the largest distance of any system to the center of the galaxy.
// Returns 0 for an empty snapshot.
func (s *Snapshot) Radius() float64 {
	var r float64
	for _, x := range s.All() {
		r = max(r, x.Distance())
	}
	return r
}

func (s *Snapshot) MarshalJSON() ([]byte, error) {
	if s == nil || s.systems == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.systems)
}

func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var systems []System
	if err := json.Unmarshal(data, &systems); err != nil {
		return err
	}
	if systems == nil {
		systems = []System{}
	}
	s.systems = systems
	return nil
}
