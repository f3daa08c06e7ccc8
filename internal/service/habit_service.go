package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/models"
	"github.com/jengzang/habitminer/internal/repository"
)

// NotEnoughDataMessage is reported when a run learns nothing
const NotEnoughDataMessage = "Not enough data to learn new habits yet. Keep using the app!"

// LearnConfig controls which stored visits feed a learning run
type LearnConfig struct {
	LookbackDays int
	MaxSamples   int
	// Location, when set, is the timezone visits are read in
	Location *time.Location
}

// LearnedHabitView is a learned habit as returned to clients
type LearnedHabitView struct {
	HabitName string `json:"habit_name"`
	habit.CandidateSummary
}

// LearnOutcome is the result of a learning run
type LearnOutcome struct {
	Message        string             `json:"message"`
	Habits         []LearnedHabitView `json:"habits"`
	SampleCount    int                `json:"sample_count"`
	ClusterCount   int                `json:"cluster_count"`
	CandidateCount int                `json:"candidate_count"`
	NamingFailures int                `json:"naming_failures"`
}

// HabitService handles business logic for habit learning
type HabitService struct {
	habits *repository.HabitRepository
	visits *repository.VisitRepository
	miner  *habit.Miner
	cfg    LearnConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewHabitService creates a new habit service
func NewHabitService(habits *repository.HabitRepository, visits *repository.VisitRepository, miner *habit.Miner, cfg LearnConfig, logger *zap.Logger) *HabitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitService{
		habits: habits,
		visits: visits,
		miner:  miner,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// Learn mines habits for a user. When raw is empty the user's stored visits
// from the lookback window are used instead.
func (s *HabitService) Learn(ctx context.Context, userID string, raw []habit.RawVisit) (*LearnOutcome, error) {
	if len(raw) == 0 {
		stored, err := s.storedVisits(ctx, userID)
		if err != nil {
			return nil, err
		}
		raw = stored
	}

	samples, err := habit.Ingest(raw, s.cfg.Location)
	if err != nil {
		return nil, err
	}

	known, err := s.habits.KnownPlaces(ctx, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.miner.Learn(ctx, userID, samples, known)
	var insufficient *habit.InsufficientDataError
	if errors.As(err, &insufficient) {
		s.logger.Info("not enough visits to learn habits",
			zap.String("user_id", userID),
			zap.Int("have", insufficient.Have),
			zap.Int("need", insufficient.Need))
		return &LearnOutcome{
			Message:     NotEnoughDataMessage,
			Habits:      []LearnedHabitView{},
			SampleCount: insufficient.Have,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	outcome := &LearnOutcome{
		Habits:         make([]LearnedHabitView, 0, len(result.Learned)),
		SampleCount:    result.SampleCount,
		ClusterCount:   result.ClusterCount,
		CandidateCount: len(result.Candidates),
		NamingFailures: len(result.NamingFailures),
	}
	for _, l := range result.Learned {
		outcome.Habits = append(outcome.Habits, LearnedHabitView{
			HabitName:        l.Record.HabitName,
			CandidateSummary: l.Candidate.Summary(),
		})
	}

	if len(outcome.Habits) == 0 {
		outcome.Message = NotEnoughDataMessage
	} else {
		outcome.Message = fmt.Sprintf("Learned %d new habits from your location patterns", len(outcome.Habits))
	}
	return outcome, nil
}

// ListHabits returns the user's stored habits
func (s *HabitService) ListHabits(ctx context.Context, filter models.HabitFilter) ([]models.Habit, error) {
	return s.habits.ListHabits(ctx, filter)
}

// storedVisits loads the most recent visits in the lookback window and
// returns them oldest first.
func (s *HabitService) storedVisits(ctx context.Context, userID string) ([]habit.RawVisit, error) {
	filter := models.VisitFilter{UserID: userID, Limit: s.cfg.MaxSamples}
	if s.cfg.LookbackDays > 0 {
		filter.Since = s.now().AddDate(0, 0, -s.cfg.LookbackDays)
	}

	visits, err := s.visits.RecentVisits(ctx, filter)
	if err != nil {
		return nil, err
	}

	raw := make([]habit.RawVisit, len(visits))
	for i, v := range visits {
		raw[len(visits)-1-i] = toRawVisit(v)
	}
	return raw, nil
}

func toRawVisit(v models.LocationVisit) habit.RawVisit {
	lat, lon := v.Latitude, v.Longitude
	return habit.RawVisit{
		Latitude:        &lat,
		Longitude:       &lon,
		Timestamp:       v.Timestamp.Format(time.RFC3339Nano),
		DurationMinutes: v.DurationMinutes,
	}
}
