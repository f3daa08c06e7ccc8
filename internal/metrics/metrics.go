// Package metrics provides Prometheus collectors for habit mining runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "habitminer"

// Run results
const (
	ResultSuccess          = "success"
	ResultInsufficientData = "insufficient_data"
	ResultPersistError     = "persist_error"
)

// Candidate outcomes
const (
	OutcomePersisted     = "persisted"
	OutcomeLowConfidence = "low_confidence"
	OutcomeDuplicate     = "duplicate"
	OutcomeNamingFailed  = "naming_failed"
)

var (
	// RunsTotal counts mining runs.
	// Labels: result (success, insufficient_data, persist_error)
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "miner",
			Name:      "runs_total",
			Help:      "Total number of habit mining runs by result",
		},
		[]string{"result"},
	)

	// RunDuration tracks the wall time of a run including collaborator calls.
	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "miner",
			Name:      "run_duration_seconds",
			Help:      "Duration of habit mining runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// SamplesPerRun tracks batch sizes handed to the engine.
	SamplesPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "miner",
			Name:      "samples_per_run",
			Help:      "Number of visit samples analyzed per run",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)

	// ClustersPerRun tracks places that survived the noise floor.
	ClustersPerRun = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "miner",
			Name:      "clusters_per_run",
			Help:      "Number of place clusters surviving the minimum size filter per run",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// CandidatesTotal counts patterns by what happened to them.
	// Labels: outcome (persisted, low_confidence, duplicate, naming_failed)
	CandidatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "miner",
			Name:      "candidates_total",
			Help:      "Total number of temporal patterns by outcome",
		},
		[]string{"outcome"},
	)
)
