package spatial

import (
	"math"
)

// CircularMean calculates the mean of circular data (angles in radians).
// Returns 0 for empty input.
func CircularMean(angles []float64) float64 {
	if len(angles) == 0 {
		return 0
	}

	var sumSin, sumCos float64
	for _, angle := range angles {
		sumSin += math.Sin(angle)
		sumCos += math.Cos(angle)
	}

	return math.Atan2(sumSin, sumCos)
}

// CircularMeanDegrees calculates the mean of circular data in degrees, normalized to [0, 360)
func CircularMeanDegrees(angles []float64) float64 {
	radians := make([]float64, len(angles))
	for i, angle := range angles {
		radians[i] = angle * math.Pi / 180
	}
	meanDeg := CircularMean(radians) * 180 / math.Pi
	if meanDeg < 0 {
		meanDeg += 360
	}
	if meanDeg >= 360 {
		meanDeg -= 360
	}
	return meanDeg
}

// MinutesPerDay is the length of the clock circle used by CircularMeanMinuteOfDay
const MinutesPerDay = 24 * 60

// CircularMeanMinuteOfDay averages minute-of-day values on the 24h clock circle,
// so 23:50 and 00:10 average to 00:00 instead of 12:00.
func CircularMeanMinuteOfDay(minutes []float64) float64 {
	degrees := make([]float64, len(minutes))
	for i, m := range minutes {
		degrees[i] = m / MinutesPerDay * 360
	}
	return CircularMeanDegrees(degrees) / 360 * MinutesPerDay
}
