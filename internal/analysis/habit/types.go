// Package habit mines recurring place habits from raw location visits.
//
// A run is a single synchronous pass over a caller-supplied batch:
//
//	raw visits -> Ingest -> Cluster -> DetectPatterns -> Score -> Filter
//
// followed, in Miner.Learn, by one naming call and one persistence call per
// surviving candidate. Nothing is carried between runs.
package habit

import (
	"fmt"
	"time"
)

// Frequency is the recurrence cadence of a pattern
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekdays Frequency = "weekdays"
	FrequencyWeekends Frequency = "weekends"
	FrequencyCustom   Frequency = "custom"
)

// HabitType is the coarse label attached to a pattern
type HabitType string

const (
	HabitTypeCommute         HabitType = "commute"
	HabitTypeOutdoorActivity HabitType = "outdoor_activity"
	HabitTypeRoutine         HabitType = "routine"
)

// VisitSample is one normalized location visit. Immutable once ingested.
type VisitSample struct {
	Latitude        float64   `json:"latitude"`
	Longitude       float64   `json:"longitude"`
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes *float64  `json:"duration_minutes,omitempty"`
}

// PlaceCluster is a group of visits inferred to be the same physical place
type PlaceCluster struct {
	CenterLatitude  float64
	CenterLongitude float64
	Members         []VisitSample
	// RadiusMeters is the largest ground distance of a member from the final centroid
	RadiusMeters float64
}

// TemporalPattern summarizes when a place is visited
type TemporalPattern struct {
	Cluster    PlaceCluster
	PlaceKey   string
	TimeOfDay  string // HH:MM
	MeanHour   float64
	DaysOfWeek []int // distinct, ascending, 0=Sunday
	Frequency  Frequency
	VisitCount int
	Confidence float64
	HabitType  HabitType
}

// HabitCandidate is a pattern that cleared the confidence threshold and dedup
type HabitCandidate struct {
	TemporalPattern
}

// CandidateSummary is the output contract for a candidate
type CandidateSummary struct {
	CenterLatitude  float64   `json:"center_latitude"`
	CenterLongitude float64   `json:"center_longitude"`
	VisitCount      int       `json:"visit_count"`
	TimeOfDay       string    `json:"time_of_day"`
	Frequency       Frequency `json:"frequency"`
	DaysOfWeek      []int     `json:"days_of_week"`
	Confidence      float64   `json:"confidence"`
	HabitType       HabitType `json:"habit_type"`
	PlaceKey        string    `json:"place_key"`
	RadiusMeters    float64   `json:"radius_meters"`
}

// Summary returns the output view of the candidate
func (c HabitCandidate) Summary() CandidateSummary {
	return CandidateSummary{
		CenterLatitude:  c.Cluster.CenterLatitude,
		CenterLongitude: c.Cluster.CenterLongitude,
		VisitCount:      c.VisitCount,
		TimeOfDay:       c.TimeOfDay,
		Frequency:       c.Frequency,
		DaysOfWeek:      append([]int(nil), c.DaysOfWeek...),
		Confidence:      c.Confidence,
		HabitType:       c.HabitType,
		PlaceKey:        c.PlaceKey,
		RadiusMeters:    c.Cluster.RadiusMeters,
	}
}

// NamingPrompt is the structured payload handed to a Namer
type NamingPrompt struct {
	VisitCount int       `json:"visit_count"`
	TimeOfDay  string    `json:"time_of_day"`
	Frequency  Frequency `json:"frequency"`
	DaysOfWeek []int     `json:"days_of_week"`
}

// NamingPrompt builds the naming payload for the candidate
func (c HabitCandidate) NamingPrompt() NamingPrompt {
	return NamingPrompt{
		VisitCount: c.VisitCount,
		TimeOfDay:  c.TimeOfDay,
		Frequency:  c.Frequency,
		DaysOfWeek: append([]int(nil), c.DaysOfWeek...),
	}
}

// HabitRecord is the payload handed to the persistence collaborator.
// Identity is (UserID, PlaceKey); a second upsert for the same identity updates.
type HabitRecord struct {
	UserID       string    `json:"user_id"`
	PlaceKey     string    `json:"place_key"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	HabitType    HabitType `json:"habit_type"`
	HabitName    string    `json:"habit_name"`
	LocationName string    `json:"location_name"`
	Frequency    Frequency `json:"frequency"`
	DaysOfWeek   []int     `json:"days_of_week"`
	TimeOfDay    string    `json:"time_of_day"`
	LearnedByAI  bool      `json:"learned_by_ai"`
	Active       bool      `json:"active"`
}

// Record builds the persistence payload for a named candidate
func (c HabitCandidate) Record(userID, name string) HabitRecord {
	return HabitRecord{
		UserID:       userID,
		PlaceKey:     c.PlaceKey,
		Latitude:     c.Cluster.CenterLatitude,
		Longitude:    c.Cluster.CenterLongitude,
		HabitType:    c.HabitType,
		HabitName:    name,
		LocationName: LocationName(c.Cluster.CenterLatitude, c.Cluster.CenterLongitude),
		Frequency:    c.Frequency,
		DaysOfWeek:   append([]int(nil), c.DaysOfWeek...),
		TimeOfDay:    c.TimeOfDay,
		LearnedByAI:  true,
		Active:       true,
	}
}

// LocationName is the placeholder label stored until a reverse geocoder is wired in
func LocationName(lat, lon float64) string {
	return fmt.Sprintf("Location at %.4f, %.4f", lat, lon)
}
