package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/models"
)

// HabitRepository handles database operations for learned habits.
// It is the persistence collaborator of the miner.
type HabitRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewHabitRepository creates a new habit repository
func NewHabitRepository(db *sql.DB) *HabitRepository {
	return &HabitRepository{db: db, now: time.Now}
}

// UpsertHabit inserts a habit or updates the existing one for the same user and place key.
// The row id and created_at of an existing habit are kept.
func (r *HabitRepository) UpsertHabit(ctx context.Context, rec habit.HabitRecord) error {
	days, err := json.Marshal(nonNilDays(rec.DaysOfWeek))
	if err != nil {
		return &habit.PersistenceConflictError{UserID: rec.UserID, PlaceKey: rec.PlaceKey, Err: err}
	}

	query := `
		INSERT INTO user_habits (
			id, user_id, place_key, habit_name, habit_type, latitude, longitude,
			location_name, frequency, days_of_week, time_of_day, learned_by_ai, active,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, place_key) DO UPDATE SET
			habit_name = excluded.habit_name,
			habit_type = excluded.habit_type,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			location_name = excluded.location_name,
			frequency = excluded.frequency,
			days_of_week = excluded.days_of_week,
			time_of_day = excluded.time_of_day,
			learned_by_ai = excluded.learned_by_ai,
			active = excluded.active,
			updated_at = excluded.updated_at
	`

	now := formatTime(r.now())
	_, err = r.db.ExecContext(ctx, query,
		uuid.NewString(),
		rec.UserID,
		rec.PlaceKey,
		rec.HabitName,
		string(rec.HabitType),
		rec.Latitude,
		rec.Longitude,
		rec.LocationName,
		string(rec.Frequency),
		string(days),
		rec.TimeOfDay,
		rec.LearnedByAI,
		rec.Active,
		now,
		now,
	)
	if err != nil {
		return &habit.PersistenceConflictError{
			UserID:   rec.UserID,
			PlaceKey: rec.PlaceKey,
			Err:      fmt.Errorf("failed to upsert habit: %w", err),
		}
	}
	return nil
}

// ListHabits retrieves a user's habits, newest first
func (r *HabitRepository) ListHabits(ctx context.Context, filter models.HabitFilter) ([]models.Habit, error) {
	query := `SELECT id, user_id, place_key, habit_name, habit_type, latitude, longitude,
		location_name, frequency, days_of_week, time_of_day, learned_by_ai, active,
		created_at, updated_at
		FROM user_habits`

	conditions := []string{"user_id = ?"}
	args := []interface{}{filter.UserID}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = 1")
	}
	if filter.HabitType != "" {
		conditions = append(conditions, "habit_type = ?")
		args = append(args, filter.HabitType)
	}
	query += " WHERE " + strings.Join(conditions, " AND ") + " ORDER BY created_at DESC, place_key"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	for rows.Next() {
		var h models.Habit
		var days, createdAt, updatedAt string
		err := rows.Scan(
			&h.ID, &h.UserID, &h.PlaceKey, &h.HabitName, &h.HabitType, &h.Latitude, &h.Longitude,
			&h.LocationName, &h.Frequency, &days, &h.TimeOfDay, &h.LearnedByAI, &h.Active,
			&createdAt, &updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		if err := json.Unmarshal([]byte(days), &h.DaysOfWeek); err != nil {
			return nil, fmt.Errorf("failed to decode days_of_week for habit %s: %w", h.ID, err)
		}
		if h.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if h.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

// KnownPlaces returns the place keys that already carry a habit for the user
func (r *HabitRepository) KnownPlaces(ctx context.Context, userID string) (habit.KnownPlaces, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT place_key FROM user_habits WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query place keys: %w", err)
	}
	defer rows.Close()

	known := habit.NewKnownPlaces()
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan place key: %w", err)
		}
		known.Add(key)
	}
	return known, rows.Err()
}

func nonNilDays(days []int) []int {
	if days == nil {
		return []int{}
	}
	return days
}
