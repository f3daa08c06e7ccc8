package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanInts(t *testing.T) {
	assert.Equal(t, 0.0, MeanInts(nil))
	assert.InDelta(t, 8.4, MeanInts([]int{8, 8, 9, 8, 9}), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 1.0, Clamp(1.2, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}
