package spatial

import (
	"fmt"
	"math"
)

// DefaultPlaceKeyScale quantizes coordinates to two decimal digits
const DefaultPlaceKeyScale = 100.0

// PlaceKey derives the quantized identity of a place from its center.
// Coordinates are scaled, rounded half-up and joined as "<lat>_<lon>", so two
// clustering passes over overlapping data land on the same key for the same place.
func PlaceKey(lat, lon, scale float64) string {
	if scale <= 0 {
		scale = DefaultPlaceKeyScale
	}
	return fmt.Sprintf("%d_%d", roundHalfUp(lat*scale), roundHalfUp(lon*scale))
}

// roundHalfUp rounds .5 toward positive infinity
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
