package habit

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/metrics"
)

// Namer turns a pattern summary into a short human-readable habit name
type Namer interface {
	Name(ctx context.Context, prompt NamingPrompt) (string, error)
}

// NamerFunc adapts a function to the Namer interface
type NamerFunc func(ctx context.Context, prompt NamingPrompt) (string, error)

// Name calls f
func (f NamerFunc) Name(ctx context.Context, prompt NamingPrompt) (string, error) {
	return f(ctx, prompt)
}

// HabitStore upserts habit records keyed by user and place. Implementations
// must enforce uniqueness of (UserID, PlaceKey) so concurrent runs over
// overlapping data update rather than duplicate.
type HabitStore interface {
	UpsertHabit(ctx context.Context, rec HabitRecord) error
}

// Analysis is the outcome of the pure part of a run
type Analysis struct {
	SampleCount   int
	ClusterCount  int
	PatternCount  int
	Candidates    []HabitCandidate
	LowConfidence int
	Duplicates    int
}

// LearnedHabit is a candidate that was named and persisted
type LearnedHabit struct {
	Candidate HabitCandidate
	Record    HabitRecord
}

// LearnResult is the outcome of Miner.Learn
type LearnResult struct {
	Analysis
	Learned        []LearnedHabit
	NamingFailures []*NamingCollaboratorError
}

// Miner runs the mining pipeline and drives the naming and persistence collaborators
type Miner struct {
	cfg    Config
	namer  Namer
	store  HabitStore
	logger *zap.Logger
}

// NewMiner creates a new miner
func NewMiner(cfg Config, namer Namer, store HabitStore, logger *zap.Logger) *Miner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Miner{
		cfg:    cfg,
		namer:  namer,
		store:  store,
		logger: logger,
	}
}

// Config returns the miner configuration
func (m *Miner) Config() Config {
	return m.cfg
}

// Analyze runs clustering, temporal detection, scoring and filtering.
// It has no side effects.
func (m *Miner) Analyze(samples []VisitSample, known KnownPlaces) Analysis {
	clusters := Cluster(samples, m.cfg)
	patterns := Score(DetectPatterns(clusters, m.cfg), m.cfg)
	filtered := Filter(patterns, known, m.cfg)

	return Analysis{
		SampleCount:   len(samples),
		ClusterCount:  len(clusters),
		PatternCount:  len(patterns),
		Candidates:    filtered.Candidates,
		LowConfidence: filtered.LowConfidence,
		Duplicates:    filtered.Duplicates,
	}
}

// Learn analyzes samples for a user, then names and persists each surviving
// candidate in ranked order. Collaborator calls start only after analysis is
// complete. A naming failure drops that candidate and is reported in the
// result; a persistence failure is returned unchanged and ends the run.
func (m *Miner) Learn(ctx context.Context, userID string, samples []VisitSample, known KnownPlaces) (*LearnResult, error) {
	start := time.Now()
	defer func() { metrics.RunDuration.Observe(time.Since(start).Seconds()) }()

	if m.cfg.MinSamples > 0 && len(samples) < m.cfg.MinSamples {
		metrics.RunsTotal.WithLabelValues(metrics.ResultInsufficientData).Inc()
		return nil, &InsufficientDataError{Have: len(samples), Need: m.cfg.MinSamples}
	}

	analysis := m.Analyze(samples, known)
	metrics.SamplesPerRun.Observe(float64(analysis.SampleCount))
	metrics.ClustersPerRun.Observe(float64(analysis.ClusterCount))
	metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeLowConfidence).Add(float64(analysis.LowConfidence))
	metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeDuplicate).Add(float64(analysis.Duplicates))

	m.logger.Info("analyzed visit samples",
		zap.String("user_id", userID),
		zap.Int("samples", analysis.SampleCount),
		zap.Int("clusters", analysis.ClusterCount),
		zap.Int("candidates", len(analysis.Candidates)),
		zap.Int("low_confidence", analysis.LowConfidence),
		zap.Int("duplicates", analysis.Duplicates))

	result := &LearnResult{Analysis: analysis}
	for _, c := range analysis.Candidates {
		name, err := m.name(ctx, c)
		if err != nil {
			nerr := &NamingCollaboratorError{PlaceKey: c.PlaceKey, Err: err}
			result.NamingFailures = append(result.NamingFailures, nerr)
			metrics.CandidatesTotal.WithLabelValues(metrics.OutcomeNamingFailed).Inc()
			m.logger.Warn("skipping habit candidate",
				zap.String("user_id", userID),
				zap.String("place_key", c.PlaceKey),
				zap.Error(err))
			continue
		}

		rec := c.Record(userID, name)
		if err := m.store.UpsertHabit(ctx, rec); err != nil {
			metrics.RunsTotal.WithLabelValues(metrics.ResultPersistError).Inc()
			m.logger.Error("failed to persist habit",
				zap.String("user_id", userID),
				zap.String("place_key", c.PlaceKey),
				zap.Error(err))
			return nil, err
		}
		metrics.CandidatesTotal.WithLabelValues(metrics.OutcomePersisted).Inc()
		result.Learned = append(result.Learned, LearnedHabit{Candidate: c, Record: rec})
	}

	metrics.RunsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	m.logger.Info("habit mining completed",
		zap.String("user_id", userID),
		zap.Int("learned", len(result.Learned)),
		zap.Int("naming_failures", len(result.NamingFailures)))
	return result, nil
}

var errEmptyName = errors.New("empty habit name")

func (m *Miner) name(ctx context.Context, c HabitCandidate) (string, error) {
	if m.namer == nil {
		return "", errors.New("no naming collaborator configured")
	}
	name, err := m.namer.Name(ctx, c.NamingPrompt())
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errEmptyName
	}
	return name, nil
}
