package habit

import (
	"fmt"
	"math"
	"sort"

	"github.com/jengzang/habitminer/internal/spatial"
	"github.com/jengzang/habitminer/internal/stats"
)

// DetectPatterns derives one TemporalPattern per cluster. Timestamps are taken
// as already being in the user's local time. Confidence is left for Score.
func DetectPatterns(clusters []PlaceCluster, cfg Config) []TemporalPattern {
	patterns := make([]TemporalPattern, 0, len(clusters))
	for _, c := range clusters {
		patterns = append(patterns, detectPattern(c, cfg))
	}
	return patterns
}

func detectPattern(c PlaceCluster, cfg Config) TemporalPattern {
	hours := make([]int, len(c.Members))
	minutes := make([]int, len(c.Members))
	var seen [7]bool
	for i, m := range c.Members {
		hours[i] = m.Timestamp.Hour()
		minutes[i] = m.Timestamp.Minute()
		seen[int(m.Timestamp.Weekday())] = true
	}

	days := make([]int, 0, 7)
	for d, ok := range seen {
		if ok {
			days = append(days, d)
		}
	}
	sort.Ints(days)

	var meanHour float64
	var timeOfDay string
	if cfg.TimeOfDayMode == TimeOfDayCircular {
		meanHour, timeOfDay = circularTimeOfDay(hours, minutes)
	} else {
		meanHour, timeOfDay = arithmeticTimeOfDay(hours, minutes)
	}

	return TemporalPattern{
		Cluster:    c,
		PlaceKey:   spatial.PlaceKey(c.CenterLatitude, c.CenterLongitude, cfg.PlaceKeyScale),
		TimeOfDay:  timeOfDay,
		MeanHour:   meanHour,
		DaysOfWeek: days,
		Frequency:  ClassifyFrequency(days),
		VisitCount: len(c.Members),
		HabitType:  ClassifyHabitType(meanHour, len(c.Members)),
	}
}

// arithmeticTimeOfDay floors the mean hour and the mean minute independently.
// Visits straddling midnight average toward noon.
func arithmeticTimeOfDay(hours, minutes []int) (float64, string) {
	meanHour := stats.MeanInts(hours)
	meanMinute := stats.MeanInts(minutes)
	return meanHour, formatClock(int(math.Floor(meanHour)), int(math.Floor(meanMinute)))
}

func circularTimeOfDay(hours, minutes []int) (float64, string) {
	ofDay := make([]float64, len(hours))
	for i := range hours {
		ofDay[i] = float64(hours[i]*60 + minutes[i])
	}
	mean := spatial.CircularMeanMinuteOfDay(ofDay)
	total := int(math.Floor(mean)) % spatial.MinutesPerDay
	return mean / 60, formatClock(total/60, total%60)
}

func formatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
