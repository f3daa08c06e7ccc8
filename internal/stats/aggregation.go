package stats

// MeanInts calculates the arithmetic mean of integer values
func MeanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum int
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// Clamp limits v to the closed interval [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
