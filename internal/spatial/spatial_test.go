package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDegreeDistance(t *testing.T) {
	assert.InDelta(t, 0.0, DegreeDistance(40.0, -74.0, 40.0, -74.0), 1e-12)
	assert.InDelta(t, 5.0, DegreeDistance(0, 0, 3, 4), 1e-12)
	assert.InDelta(t, DegreeDistance(1, 2, 3, 4), DegreeDistance(3, 4, 1, 2), 1e-12)
}

func TestHaversineDistance(t *testing.T) {
	// 0.001 degree of latitude is roughly 111 m everywhere
	d := HaversineDistance(40.0, -74.0, 40.001, -74.0)
	assert.InDelta(t, 111.2, d, 1.0)
	assert.InDelta(t, 0.0, HaversineDistance(10, 10, 10, 10), 1e-9)
}

func TestCircularMeanMinuteOfDay(t *testing.T) {
	// 23:50 and 00:10 straddle midnight
	m := CircularMeanMinuteOfDay([]float64{23*60 + 50, 10})
	if m > MinutesPerDay/2 {
		m -= MinutesPerDay
	}
	assert.InDelta(t, 0.0, m, 0.01)

	assert.InDelta(t, 8*60.0, CircularMeanMinuteOfDay([]float64{7 * 60, 9 * 60}), 0.01)
	assert.InDelta(t, 0.0, CircularMeanMinuteOfDay(nil), 1e-12)
}

func TestPlaceKey(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		want     string
	}{
		{"positive", 40.7128, -74.0060, "4071_-7401"},
		{"half rounds up", 0.125, -0.125, "13_-12"},
		{"nearby points share a key", 40.71279, -74.00601, "4071_-7401"},
		{"southern hemisphere", -33.8688, 151.2093, "-3387_15121"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlaceKey(tt.lat, tt.lon, DefaultPlaceKeyScale))
		})
	}

	assert.Equal(t, PlaceKey(1.2346, 2.3456, 0), PlaceKey(1.2346, 2.3456, DefaultPlaceKeyScale))
	assert.Equal(t, "1235_2346", PlaceKey(1.2346, 2.3456, 1000))
}
