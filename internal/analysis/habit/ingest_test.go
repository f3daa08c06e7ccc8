package habit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngest_PreservesOrderAndFields(t *testing.T) {
	raw := []RawVisit{
		{Latitude: ptr(40.0), Longitude: ptr(-74.0), Timestamp: "2024-01-15T08:30:00Z", DurationMinutes: ptr(12)},
		{Latitude: ptr(0), Longitude: ptr(0), Timestamp: "2024-01-14T23:05:10.250Z"},
		{Latitude: ptr(-33.9), Longitude: ptr(151.2), Timestamp: "2024-01-16T07:00:00+10:00"},
	}

	samples, err := Ingest(raw, nil)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 40.0, samples[0].Latitude)
	assert.Equal(t, -74.0, samples[0].Longitude)
	require.NotNil(t, samples[0].DurationMinutes)
	assert.Equal(t, 12.0, *samples[0].DurationMinutes)
	assert.Equal(t, 8, samples[0].Timestamp.Hour())

	assert.Equal(t, 0.0, samples[1].Latitude)
	assert.Nil(t, samples[1].DurationMinutes)
	assert.Equal(t, 23, samples[1].Timestamp.Hour())

	// zoned timestamps keep their own wall clock when no location is given
	assert.Equal(t, 7, samples[2].Timestamp.Hour())
}

func TestIngest_Timezones(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	raw := []RawVisit{
		{Latitude: ptr(35.68), Longitude: ptr(139.76), Timestamp: "2024-01-15T00:30:00Z"},
		{Latitude: ptr(35.68), Longitude: ptr(139.76), Timestamp: "2024-01-15T08:30:00"},
	}

	samples, err := Ingest(raw, tokyo)
	require.NoError(t, err)
	assert.Equal(t, 9, samples[0].Timestamp.Hour())
	assert.Equal(t, 8, samples[1].Timestamp.Hour())
	assert.Equal(t, tokyo, samples[1].Timestamp.Location())

	samples, err = Ingest(raw[1:], nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, samples[0].Timestamp.Location())
}

func TestIngest_Empty(t *testing.T) {
	samples, err := Ingest(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestIngest_Rejects(t *testing.T) {
	valid := RawVisit{Latitude: ptr(1), Longitude: ptr(1), Timestamp: "2024-01-15T08:30:00Z"}

	tests := []struct {
		name  string
		visit RawVisit
		field string
	}{
		{"missing latitude", RawVisit{Longitude: ptr(1), Timestamp: valid.Timestamp}, "latitude"},
		{"missing longitude", RawVisit{Latitude: ptr(1), Timestamp: valid.Timestamp}, "longitude"},
		{"missing timestamp", RawVisit{Latitude: ptr(1), Longitude: ptr(1)}, "timestamp"},
		{"latitude above range", RawVisit{Latitude: ptr(90.5), Longitude: ptr(1), Timestamp: valid.Timestamp}, "latitude"},
		{"latitude below range", RawVisit{Latitude: ptr(-91), Longitude: ptr(1), Timestamp: valid.Timestamp}, "latitude"},
		{"longitude above range", RawVisit{Latitude: ptr(1), Longitude: ptr(180.01), Timestamp: valid.Timestamp}, "longitude"},
		{"longitude below range", RawVisit{Latitude: ptr(1), Longitude: ptr(-181), Timestamp: valid.Timestamp}, "longitude"},
		{"nan latitude", RawVisit{Latitude: ptr(math.NaN()), Longitude: ptr(1), Timestamp: valid.Timestamp}, "latitude"},
		{"garbage timestamp", RawVisit{Latitude: ptr(1), Longitude: ptr(1), Timestamp: "yesterday"}, "timestamp"},
		{"negative duration", RawVisit{Latitude: ptr(1), Longitude: ptr(1), Timestamp: valid.Timestamp, DurationMinutes: ptr(-5)}, "duration_minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples, err := Ingest([]RawVisit{valid, tt.visit, valid}, nil)
			require.Error(t, err)
			assert.Nil(t, samples)

			var invalid *InvalidSampleError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, 1, invalid.Index)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestIngest_BoundaryCoordinatesAccepted(t *testing.T) {
	raw := []RawVisit{
		{Latitude: ptr(90), Longitude: ptr(180), Timestamp: "2024-01-15T08:30:00Z"},
		{Latitude: ptr(-90), Longitude: ptr(-180), Timestamp: "2024-01-15T08:30:00Z"},
	}
	samples, err := Ingest(raw, nil)
	require.NoError(t, err)
	assert.Len(t, samples, 2)
}
