package habit

import (
	"time"
)

// monday is 2024-01-01, a Monday
var monday = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

func sampleAt(lat, lon float64, ts time.Time) VisitSample {
	return VisitSample{Latitude: lat, Longitude: lon, Timestamp: ts}
}

// dailyVisits returns n visits to one place on consecutive days starting at
// start, each at hour:00, with a small deterministic jitter well inside ε.
func dailyVisits(lat, lon float64, n int, start time.Time, hour int) []VisitSample {
	out := make([]VisitSample, n)
	for i := 0; i < n; i++ {
		jitter := float64(i%3-1) * 0.0001
		ts := start.AddDate(0, 0, i).Add(time.Duration(hour) * time.Hour)
		out[i] = sampleAt(lat+jitter, lon-jitter, ts)
	}
	return out
}

func ptr(v float64) *float64 { return &v }
