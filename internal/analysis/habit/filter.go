package habit

// KnownPlaces is the set of place keys that already carry a habit
type KnownPlaces map[string]struct{}

// NewKnownPlaces builds a set from place keys
func NewKnownPlaces(keys ...string) KnownPlaces {
	k := make(KnownPlaces, len(keys))
	for _, key := range keys {
		k[key] = struct{}{}
	}
	return k
}

// Has reports whether the key is known
func (k KnownPlaces) Has(key string) bool {
	_, ok := k[key]
	return ok
}

// Add marks a key as known
func (k KnownPlaces) Add(key string) {
	k[key] = struct{}{}
}

// FilterResult holds surviving candidates and drop counts
type FilterResult struct {
	Candidates    []HabitCandidate
	LowConfidence int
	Duplicates    int
}

// Filter keeps patterns with confidence strictly above the threshold whose
// place key is neither known nor already taken by a higher-ranked candidate
// of the same run. Input order (ranked) is preserved. known is not modified.
func Filter(patterns []TemporalPattern, known KnownPlaces, cfg Config) FilterResult {
	var res FilterResult
	taken := make(KnownPlaces)
	for _, p := range patterns {
		if p.Confidence <= cfg.ConfidenceThreshold {
			res.LowConfidence++
			continue
		}
		if known.Has(p.PlaceKey) || taken.Has(p.PlaceKey) {
			res.Duplicates++
			continue
		}
		taken.Add(p.PlaceKey)
		res.Candidates = append(res.Candidates, HabitCandidate{TemporalPattern: p})
	}
	return res
}
