package models

import "time"

// LocationVisit represents a stored location sample
type LocationVisit struct {
	ID              string    `json:"id" db:"id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Latitude        float64   `json:"latitude" db:"latitude"`
	Longitude       float64   `json:"longitude" db:"longitude"`
	Accuracy        *float64  `json:"accuracy,omitempty" db:"accuracy"` // Meters
	DurationMinutes *float64  `json:"duration_minutes,omitempty" db:"duration_minutes"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// VisitFilter represents filter parameters for querying visits
type VisitFilter struct {
	UserID string    `form:"-"`
	Since  time.Time `form:"-"`
	Days   int       `form:"days"`  // Lookback window in days
	Limit  int       `form:"limit"` // Most recent N
}
