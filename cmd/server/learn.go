package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/database"
	"github.com/jengzang/habitminer/internal/middleware"
	"github.com/jengzang/habitminer/internal/repository"
	"github.com/jengzang/habitminer/internal/service"
)

func learnCmd() *cobra.Command {
	var (
		inputPath string
		userID    string
		offline   bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn habits from a JSON file of visits",
		Long: "Reads visits from --input (a JSON array, or an object with a location_visits array) " +
			"and learns habits for --user. With --dry-run candidates are printed and nothing is named or stored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			raw, err := readVisitsFile(inputPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if dryRun {
				loc, err := cfg.Mining.Location()
				if err != nil {
					return err
				}
				samples, err := habit.Ingest(raw, loc)
				if err != nil {
					return err
				}
				miner := habit.NewMiner(cfg.Mining.Engine(), nil, nil, logger)
				return writeJSON(out, candidateSummaries(miner.Analyze(samples, nil)))
			}

			if userID == "" {
				return fmt.Errorf("--user is required unless --dry-run is set")
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
				return fmt.Errorf("create db dir: %w", err)
			}
			db, err := database.Open(database.Config{
				Path:         cfg.Database.Path,
				MaxOpenConns: cfg.Database.MaxOpenConns,
				BusyTimeout:  cfg.Database.BusyTimeoutMS,
			}, logger.Named("database"))
			if err != nil {
				return err
			}
			defer db.Close()

			namer, err := newNamer(cfg.Naming, offline, logger)
			if err != nil {
				return err
			}
			loc, err := cfg.Mining.Location()
			if err != nil {
				return err
			}

			habitRepo := repository.NewHabitRepository(db)
			miner := habit.NewMiner(cfg.Mining.Engine(), namer, habitRepo, logger.Named("miner"))
			svc := service.NewHabitService(habitRepo, repository.NewVisitRepository(db), miner, service.LearnConfig{
				LookbackDays: cfg.Mining.LookbackDays,
				MaxSamples:   cfg.Mining.MaxSamples,
				Location:     loc,
			}, logger)

			outcome, err := svc.Learn(cmd.Context(), userID, raw)
			if err != nil {
				return err
			}
			return writeJSON(out, outcome)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "visits JSON file, - for stdin")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id to learn habits for")
	cmd.Flags().BoolVar(&offline, "offline", false, "use template names instead of the naming API")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print candidates without naming or storing them")

	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Auth.JWTSecret == "" {
				return fmt.Errorf("auth.jwt_secret is not configured")
			}
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			token, err := middleware.IssueToken([]byte(cfg.Auth.JWTSecret), userID, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id (token subject)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")

	return cmd
}

func readVisitsFile(path string) ([]habit.RawVisit, error) {
	var content []byte
	var err error
	if path == "" || path == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read visits: %w", err)
	}
	return parseVisits(content)
}

// parseVisits accepts a bare array or {"location_visits": [...]}
func parseVisits(content []byte) ([]habit.RawVisit, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var visits []habit.RawVisit
		if err := json.Unmarshal(trimmed, &visits); err != nil {
			return nil, fmt.Errorf("parse visits: %w", err)
		}
		return visits, nil
	}

	var wrapped struct {
		LocationVisits []habit.RawVisit `json:"location_visits"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("parse visits: %w", err)
	}
	return wrapped.LocationVisits, nil
}

func candidateSummaries(a habit.Analysis) []habit.CandidateSummary {
	out := make([]habit.CandidateSummary, len(a.Candidates))
	for i, c := range a.Candidates {
		out[i] = c.Summary()
	}
	return out
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
