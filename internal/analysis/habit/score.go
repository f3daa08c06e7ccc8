package habit

import (
	"sort"

	"github.com/jengzang/habitminer/internal/stats"
)

// Confidence is a saturating linear score: visits/saturation capped at 1.0.
// It has no recency decay; ten visits two weeks ago score the same as ten
// visits yesterday.
func Confidence(visitCount int, saturation float64) float64 {
	if visitCount <= 0 {
		return 0
	}
	if saturation <= 0 {
		saturation = DefaultConfig().ConfidenceSaturation
	}
	return stats.Clamp(float64(visitCount)/saturation, 0, 1)
}

// Score fills in confidence and sorts patterns by descending confidence.
// The sort is stable so equal scores keep cluster creation order.
func Score(patterns []TemporalPattern, cfg Config) []TemporalPattern {
	for i := range patterns {
		patterns[i].Confidence = Confidence(patterns[i].VisitCount, cfg.ConfidenceSaturation)
	}
	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})
	return patterns
}
