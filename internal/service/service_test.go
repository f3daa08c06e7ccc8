package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/database"
	"github.com/jengzang/habitminer/internal/models"
	"github.com/jengzang/habitminer/internal/naming"
	"github.com/jengzang/habitminer/internal/repository"
)

var fixedNow = time.Date(2024, 2, 15, 20, 0, 0, 0, time.UTC)

type testServices struct {
	habits *HabitService
	visits *VisitService
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	conn, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "svc.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	habitRepo := repository.NewHabitRepository(conn)
	visitRepo := repository.NewVisitRepository(conn)
	miner := habit.NewMiner(habit.DefaultConfig(), naming.TemplateNamer{}, habitRepo, nil)

	hs := NewHabitService(habitRepo, visitRepo, miner, LearnConfig{LookbackDays: 14, MaxSamples: 100}, nil)
	hs.now = func() time.Time { return fixedNow }
	vs := NewVisitService(visitRepo)
	vs.now = func() time.Time { return fixedNow }
	return testServices{habits: hs, visits: vs}
}

func visitsAt(lat, lon float64, n int, start time.Time) []VisitInput {
	out := make([]VisitInput, n)
	for i := range out {
		la, lo := lat, lon
		out[i] = VisitInput{RawVisit: habit.RawVisit{
			Latitude:  &la,
			Longitude: &lo,
			Timestamp: start.AddDate(0, 0, i).Format(time.RFC3339),
		}}
	}
	return out
}

func TestHabitService_LearnFromStoredVisits(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	// 12 middays and 8 evenings inside the 14 day window, plus old visits outside it
	start := fixedNow.AddDate(0, 0, -13)
	inputs := visitsAt(48.8566, 2.3522, 12, time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, time.UTC))
	inputs = append(inputs, visitsAt(48.87, 2.33, 8, time.Date(start.Year(), start.Month(), start.Day(), 18, 0, 0, 0, time.UTC))...)
	inputs = append(inputs, visitsAt(10, 10, 5, fixedNow.AddDate(0, -2, 0))...)
	_, err := svc.visits.RecordVisits(ctx, "u1", inputs)
	require.NoError(t, err)

	outcome, err := svc.habits.Learn(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 20, outcome.SampleCount)
	assert.Equal(t, 2, outcome.ClusterCount)
	require.Len(t, outcome.Habits, 2)
	assert.Equal(t, "Learned 2 new habits from your location patterns", outcome.Message)

	first := outcome.Habits[0]
	assert.Equal(t, "Daily midday routine", first.HabitName)
	assert.Equal(t, "12:00", first.TimeOfDay)
	assert.Equal(t, 1.0, first.Confidence)
	assert.Equal(t, "4886_235", first.PlaceKey)
	assert.Equal(t, habit.HabitTypeCommute, outcome.Habits[1].HabitType)

	stored, err := svc.habits.ListHabits(ctx, models.HabitFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, stored, 2)

	again, err := svc.habits.Learn(ctx, "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, again.Habits)
	assert.Equal(t, NotEnoughDataMessage, again.Message)
}

func TestHabitService_InsufficientData(t *testing.T) {
	svc := newTestServices(t)

	outcome, err := svc.habits.Learn(context.Background(), "new-user", nil)
	require.NoError(t, err)
	assert.Equal(t, NotEnoughDataMessage, outcome.Message)
	assert.NotNil(t, outcome.Habits)
	assert.Empty(t, outcome.Habits)
}

func TestHabitService_LearnFromSuppliedVisits(t *testing.T) {
	svc := newTestServices(t)

	inputs := visitsAt(51.5, -0.12, 11, time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC))
	raw := make([]habit.RawVisit, len(inputs))
	for i := range inputs {
		raw[i] = inputs[i].RawVisit
	}

	outcome, err := svc.habits.Learn(context.Background(), "u1", raw)
	require.NoError(t, err)
	require.Len(t, outcome.Habits, 1)
	assert.Equal(t, "08:30", outcome.Habits[0].TimeOfDay)
	assert.Equal(t, habit.FrequencyDaily, outcome.Habits[0].Frequency)
}

func TestHabitService_RejectsInvalidVisit(t *testing.T) {
	svc := newTestServices(t)

	raw := []habit.RawVisit{{Timestamp: "2024-01-01T08:00:00Z"}}
	_, err := svc.habits.Learn(context.Background(), "u1", raw)

	var invalid *habit.InvalidSampleError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, 0, invalid.Index)
}

func TestVisitService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	acc := 8.0
	inputs := visitsAt(1, 2, 3, fixedNow.AddDate(0, 0, -5))
	inputs[0].Accuracy = &acc

	recorded, err := svc.visits.RecordVisits(ctx, "u1", inputs)
	require.NoError(t, err)
	require.Len(t, recorded, 3)
	assert.NotEmpty(t, recorded[0].ID)

	listed, err := svc.visits.ListVisits(ctx, models.VisitFilter{UserID: "u1", Days: 4})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].Timestamp.After(listed[1].Timestamp))

	listed, err = svc.visits.ListVisits(ctx, models.VisitFilter{UserID: "u1", Limit: 1})
	require.NoError(t, err)
	require.Len(t, listed, 1)

	bad := visitsAt(1, 2, 2, fixedNow)
	bad[1].Timestamp = "yesterday"
	_, err = svc.visits.RecordVisits(ctx, "u1", bad)
	var invalid *habit.InvalidSampleError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "timestamp", invalid.Field)

	all, err := svc.visits.ListVisits(ctx, models.VisitFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
