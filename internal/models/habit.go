package models

import "time"

// Habit represents a learned habit stored in user_habits
type Habit struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	PlaceKey     string    `json:"place_key" db:"place_key"`
	HabitName    string    `json:"habit_name" db:"habit_name"`
	HabitType    string    `json:"habit_type" db:"habit_type"` // commute, outdoor_activity, routine
	Latitude     float64   `json:"latitude" db:"latitude"`
	Longitude    float64   `json:"longitude" db:"longitude"`
	LocationName string    `json:"location_name" db:"location_name"`
	Frequency    string    `json:"frequency" db:"frequency"` // daily, weekdays, weekends, custom
	DaysOfWeek   []int     `json:"days_of_week" db:"days_of_week"`
	TimeOfDay    string    `json:"time_of_day" db:"time_of_day"` // HH:MM
	LearnedByAI  bool      `json:"learned_by_ai" db:"learned_by_ai"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HabitFilter represents filter parameters for listing habits
type HabitFilter struct {
	UserID     string `form:"-"`
	ActiveOnly bool   `form:"active"`
	HabitType  string `form:"habit_type"`
}
