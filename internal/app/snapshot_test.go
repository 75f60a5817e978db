package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ErikKalkoken/spacemap/internal/app"
)

func TestSnapshot(t *testing.T) {
	systems := []app.System{
		{
			Symbol:       app.MustParseSymbol("X1-AA11"),
			SectorSymbol: app.MustParseSymbol("X1"),
			Type:         app.SystemRedStar,
			X:            3,
			Y:            4,
			Waypoints: []app.Waypoint{
				{Symbol: app.MustParseSymbol("X1-AA11-B1"), Type: app.WaypointPlanet, X: 1, Y: 2},
			},
		},
		{
			Symbol:       app.MustParseSymbol("X1-BB22"),
			SectorSymbol: app.MustParseSymbol("X1"),
			Type:         app.SystemBlackHole,
			X:            -6,
			Y:            8,
		},
	}
	t.Run("should keep order of systems", func(t *testing.T) {
		s := app.NewSnapshot(systems)
		assert.Equal(t, 2, s.Len())
		assert.Equal(t, systems[0].Symbol, s.Systems()[0].Symbol)
		assert.Equal(t, systems[1].Symbol, s.Systems()[1].Symbol)
	})
	t.Run("should not be affected by changes to source slice", func(t *testing.T) {
		src := []app.System{{Symbol: app.MustParseSymbol("X1-AA11"), Waypoints: []app.Waypoint{{X: 1}}}}
		s := app.NewSnapshot(src)
		src[0].X = 99
		src[0].Waypoints[0].X = 99
		assert.Equal(t, 0, s.Systems()[0].X)
		assert.Equal(t, 1, s.Systems()[0].Waypoints[0].X)
	})
	t.Run("should return copies of systems", func(t *testing.T) {
		s := app.NewSnapshot(systems)
		got := s.Systems()
		got[0].Waypoints[0].X = 99
		assert.Equal(t, 1, s.Systems()[0].Waypoints[0].X)
	})
	t.Run("radius is the largest distance to center", func(t *testing.T) {
		s := app.NewSnapshot(systems)
		assert.InDelta(t, 10.0, s.Radius(), 1e-9)
	})
	t.Run("empty snapshot has radius 0", func(t *testing.T) {
		var s app.Snapshot
		assert.Equal(t, 0.0, s.Radius())
		assert.Equal(t, 0, s.Len())
	})
	t.Run("can iterate over all systems", func(t *testing.T) {
		s := app.NewSnapshot(systems)
		var got []string
		for _, x := range s.All() {
			got = append(got, x.Symbol.String())
		}
		assert.Equal(t, []string{"X1-AA11", "X1-BB22"}, got)
	})
	t.Run("can marshal and unmarshal as JSON array", func(t *testing.T) {
		s := app.NewSnapshot(systems)
		data, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, byte('['), data[0])
		var s2 app.Snapshot
		err = json.Unmarshal(data, &s2)
		require.NoError(t, err)
		assert.Equal(t, s.Systems(), s2.Systems())
	})
	t.Run("should marshal empty snapshot as empty array", func(t *testing.T) {
		data, err := json.Marshal(app.NewSnapshot(nil))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	})
}
