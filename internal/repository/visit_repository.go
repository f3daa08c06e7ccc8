package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/habitminer/internal/database"
	"github.com/jengzang/habitminer/internal/models"
)

// VisitRepository handles database operations for location visits
type VisitRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewVisitRepository creates a new visit repository
func NewVisitRepository(db *sql.DB) *VisitRepository {
	return &VisitRepository{db: db, now: time.Now}
}

// InsertVisits stores a batch of visits in one transaction, assigning ids and creation times
func (r *VisitRepository) InsertVisits(ctx context.Context, visits []models.LocationVisit) error {
	if len(visits) == 0 {
		return nil
	}

	query := `
		INSERT INTO location_visits (
			id, user_id, latitude, longitude, accuracy, duration_minutes,
			timestamp, timestamp_unix_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	createdAt := r.now().UTC()
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare visit insert: %w", err)
		}
		defer stmt.Close()

		for i := range visits {
			v := &visits[i]
			if v.ID == "" {
				v.ID = uuid.NewString()
			}
			v.CreatedAt = createdAt

			_, err := stmt.ExecContext(ctx,
				v.ID,
				v.UserID,
				v.Latitude,
				v.Longitude,
				v.Accuracy,
				v.DurationMinutes,
				v.Timestamp.Format(time.RFC3339Nano),
				v.Timestamp.UnixMilli(),
				formatTime(createdAt),
			)
			if err != nil {
				return fmt.Errorf("failed to insert visit %d: %w", i, err)
			}
		}
		return nil
	})
}

// RecentVisits returns a user's visits at or after filter.Since, most recent first,
// capped at filter.Limit when positive. Timestamps keep the offset they were recorded with.
func (r *VisitRepository) RecentVisits(ctx context.Context, filter models.VisitFilter) ([]models.LocationVisit, error) {
	query := `SELECT id, user_id, latitude, longitude, accuracy, duration_minutes, timestamp, created_at
		FROM location_visits
		WHERE user_id = ? AND timestamp_unix_ms >= ?
		ORDER BY timestamp_unix_ms DESC`
	args := []interface{}{filter.UserID, filter.Since.UnixMilli()}
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer rows.Close()

	visits := []models.LocationVisit{}
	for rows.Next() {
		var v models.LocationVisit
		var accuracy, duration sql.NullFloat64
		var ts, createdAt string
		if err := rows.Scan(&v.ID, &v.UserID, &v.Latitude, &v.Longitude, &accuracy, &duration, &ts, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan visit: %w", err)
		}
		if accuracy.Valid {
			v.Accuracy = &accuracy.Float64
		}
		if duration.Valid {
			v.DurationMinutes = &duration.Float64
		}
		if v.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		if v.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate visits: %w", err)
	}

	return visits, nil
}
