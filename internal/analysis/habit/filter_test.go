package habit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredPattern(key string, visits int) TemporalPattern {
	return TemporalPattern{PlaceKey: key, VisitCount: visits, Confidence: Confidence(visits, 10)}
}

func TestFilter_ThresholdIsExclusive(t *testing.T) {
	patterns := []TemporalPattern{
		scoredPattern("a", 7),
		scoredPattern("b", 6),
		scoredPattern("c", 3),
	}

	res := Filter(patterns, nil, DefaultConfig())
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "a", res.Candidates[0].PlaceKey)
	assert.Equal(t, 2, res.LowConfidence)
	assert.Zero(t, res.Duplicates)
}

func TestFilter_DropsKnownPlaces(t *testing.T) {
	patterns := []TemporalPattern{
		scoredPattern("a", 10),
		scoredPattern("b", 9),
	}
	known := NewKnownPlaces("a")

	res := Filter(patterns, known, DefaultConfig())
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "b", res.Candidates[0].PlaceKey)
	assert.Equal(t, 1, res.Duplicates)

	// the caller's set is left untouched
	assert.Len(t, known, 1)
	assert.False(t, known.Has("b"))
}

func TestFilter_KeepsFirstOfCollidingCandidates(t *testing.T) {
	patterns := []TemporalPattern{
		scoredPattern("a", 12),
		scoredPattern("a", 8),
		scoredPattern("b", 8),
	}

	res := Filter(patterns, NewKnownPlaces(), DefaultConfig())
	require.Len(t, res.Candidates, 2)
	assert.Equal(t, 12, res.Candidates[0].VisitCount)
	assert.Equal(t, "b", res.Candidates[1].PlaceKey)
	assert.Equal(t, 1, res.Duplicates)
}

func TestKnownPlaces(t *testing.T) {
	var nilSet KnownPlaces
	assert.False(t, nilSet.Has("x"))

	k := NewKnownPlaces("x", "y")
	assert.True(t, k.Has("x"))
	k.Add("z")
	assert.True(t, k.Has("z"))
	assert.False(t, k.Has("w"))
}
