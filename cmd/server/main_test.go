package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/config"
	"github.com/jengzang/habitminer/internal/naming"
)

func TestParseVisits(t *testing.T) {
	bare := `[{"latitude": 1, "longitude": 2, "timestamp": "2024-01-01T08:00:00Z"}]`
	visits, err := parseVisits([]byte(bare))
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, 2.0, *visits[0].Longitude)

	wrapped := `  {"location_visits": [{"latitude": 1, "longitude": 2, "timestamp": "x"}, {"timestamp": "y"}]}`
	visits, err = parseVisits([]byte(wrapped))
	require.NoError(t, err)
	require.Len(t, visits, 2)
	assert.Nil(t, visits[1].Latitude)

	_, err = parseVisits([]byte("nope"))
	assert.Error(t, err)
}

func TestNewNamer(t *testing.T) {
	logger := zap.NewNop()

	n, err := newNamer(config.NamingConfig{Provider: "openai"}, false, logger)
	require.NoError(t, err)
	assert.IsType(t, naming.TemplateNamer{}, n)

	n, err = newNamer(config.NamingConfig{Provider: "openai", APIKey: "k"}, true, logger)
	require.NoError(t, err)
	assert.IsType(t, naming.TemplateNamer{}, n)

	n, err = newNamer(config.NamingConfig{Provider: "openai", APIKey: "k"}, false, logger)
	require.NoError(t, err)
	assert.IsType(t, &naming.OpenAINamer{}, n)
}

func TestLearnCmd(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(config.ConfigFileEnv, "")
	t.Setenv("HABITMINER_DATABASE_PATH", filepath.Join(dir, "db", "habits.db"))
	t.Setenv("HABITMINER_LOG_LEVEL", "error")

	var visits []map[string]interface{}
	start := time.Date(2024, 1, 1, 18, 20, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		visits = append(visits, map[string]interface{}{
			"latitude":  37.7749,
			"longitude": -122.4194,
			"timestamp": start.AddDate(0, 0, i).Format(time.RFC3339),
		})
	}
	content, err := json.Marshal(visits)
	require.NoError(t, err)
	input := filepath.Join(dir, "visits.json")
	require.NoError(t, os.WriteFile(input, content, 0o600))

	run := func(args ...string) []byte {
		t.Helper()
		cmd := learnCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		require.NoError(t, cmd.Execute())
		return out.Bytes()
	}

	var summaries []habit.CandidateSummary
	require.NoError(t, json.Unmarshal(run("--input", input, "--dry-run"), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "3777_-12242", summaries[0].PlaceKey)
	assert.Equal(t, "18:20", summaries[0].TimeOfDay)

	var outcome struct {
		Message string `json:"message"`
		Habits  []struct {
			HabitName string `json:"habit_name"`
		} `json:"habits"`
	}
	require.NoError(t, json.Unmarshal(run("--input", input, "--user", "u1", "--offline"), &outcome))
	require.Len(t, outcome.Habits, 1)
	assert.Equal(t, "Daily evening routine", outcome.Habits[0].HabitName)
}
