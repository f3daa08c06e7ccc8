package service

import (
	"context"
	"time"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/models"
	"github.com/jengzang/habitminer/internal/repository"
)

// VisitInput is a raw visit plus the fields stored but not mined
type VisitInput struct {
	habit.RawVisit
	Accuracy *float64 `json:"accuracy,omitempty"`
}

// VisitService handles business logic for recorded visits
type VisitService struct {
	repo *repository.VisitRepository
	now  func() time.Time
}

// NewVisitService creates a new visit service
func NewVisitService(repo *repository.VisitRepository) *VisitService {
	return &VisitService{repo: repo, now: time.Now}
}

// RecordVisits validates and stores a batch of visits. One invalid visit rejects the batch.
func (s *VisitService) RecordVisits(ctx context.Context, userID string, inputs []VisitInput) ([]models.LocationVisit, error) {
	raw := make([]habit.RawVisit, len(inputs))
	for i, in := range inputs {
		raw[i] = in.RawVisit
	}
	samples, err := habit.Ingest(raw, nil)
	if err != nil {
		return nil, err
	}

	visits := make([]models.LocationVisit, len(samples))
	for i, sample := range samples {
		visits[i] = models.LocationVisit{
			UserID:          userID,
			Latitude:        sample.Latitude,
			Longitude:       sample.Longitude,
			Accuracy:        inputs[i].Accuracy,
			DurationMinutes: sample.DurationMinutes,
			Timestamp:       sample.Timestamp,
		}
	}

	if err := s.repo.InsertVisits(ctx, visits); err != nil {
		return nil, err
	}
	return visits, nil
}

// ListVisits returns the user's most recent visits
func (s *VisitService) ListVisits(ctx context.Context, filter models.VisitFilter) ([]models.LocationVisit, error) {
	if filter.Days > 0 {
		filter.Since = s.now().AddDate(0, 0, -filter.Days)
	}
	if filter.Limit <= 0 || filter.Limit > 1000 {
		filter.Limit = 100
	}
	return s.repo.RecentVisits(ctx, filter)
}
