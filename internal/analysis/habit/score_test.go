package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidence_MonotoneAndBounded(t *testing.T) {
	prev := -1.0
	for n := 0; n <= 40; n++ {
		c := Confidence(n, 10)
		assert.GreaterOrEqual(t, c, prev, "visit count %d", n)
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0)
		if n >= 10 {
			assert.Equal(t, 1.0, c, "visit count %d", n)
		}
		prev = c
	}

	assert.InDelta(t, 0.6, Confidence(6, 10), 1e-12)
	assert.InDelta(t, 0.7, Confidence(7, 10), 1e-12)
	assert.Equal(t, Confidence(5, 10), Confidence(5, 0))
}

func TestScore_SortsDescendingAndStable(t *testing.T) {
	patterns := []TemporalPattern{
		{PlaceKey: "a", VisitCount: 4},
		{PlaceKey: "b", VisitCount: 12},
		{PlaceKey: "c", VisitCount: 7},
		{PlaceKey: "d", VisitCount: 15},
		{PlaceKey: "e", VisitCount: 7},
	}

	scored := Score(patterns, DefaultConfig())
	require.Len(t, scored, 5)

	keys := make([]string, len(scored))
	for i, p := range scored {
		keys[i] = p.PlaceKey
	}
	// b and d both saturate at 1.0 and keep their relative order, as do c and e
	assert.Equal(t, []string{"b", "d", "c", "e", "a"}, keys)
	assert.Equal(t, 1.0, scored[0].Confidence)
	assert.InDelta(t, 0.4, scored[4].Confidence, 1e-12)
}
