// Package xassert extends the testify assert package with additional test helpers.
package xassert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ErikKalkoken/spacemap/internal/viewport"
)

// EqualDuration asserts that got is almost equal to want.
func EqualDuration(t *testing.T, want, got, delta time.Duration) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	assert.True(t, diff <= delta, "%s is not almost equal to %s (+/- %s)", got, want, delta)
}

// EqualVec asserts that two vectors are equal within delta on both axis.
func EqualVec(t *testing.T, want, got viewport.Vec2, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, "X: expected %s, actual %s", want, got)
	assert.InDelta(t, want.Y, got.Y, delta, "Y: expected %s, actual %s", want, got)
}
