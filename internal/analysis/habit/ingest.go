package habit

import (
	"math"
	"strings"
	"time"
)

// RawVisit is a visit as received from the location-tracking collaborator.
// Pointer fields distinguish a missing value from a zero coordinate.
type RawVisit struct {
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	Timestamp       string   `json:"timestamp"`
	DurationMinutes *float64 `json:"duration_minutes,omitempty"`
}

// zone-less layouts are read in the ingestion location
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// Ingest validates raw visits and converts them to samples in input order.
// When loc is non-nil every timestamp is converted to loc; otherwise zoned
// timestamps keep their own wall clock and zone-less ones are read as UTC.
func Ingest(raw []RawVisit, loc *time.Location) ([]VisitSample, error) {
	samples := make([]VisitSample, 0, len(raw))
	for i, r := range raw {
		s, err := ingestOne(i, r, loc)
		if err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}
	return samples, nil
}

func ingestOne(i int, r RawVisit, loc *time.Location) (VisitSample, error) {
	if r.Latitude == nil {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "latitude", Reason: "is missing"}
	}
	if r.Longitude == nil {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "longitude", Reason: "is missing"}
	}
	lat, lon := *r.Latitude, *r.Longitude
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "latitude", Reason: "is outside [-90, 90]"}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "longitude", Reason: "is outside [-180, 180]"}
	}

	ts := strings.TrimSpace(r.Timestamp)
	if ts == "" {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "timestamp", Reason: "is missing"}
	}
	t, ok := parseTimestamp(ts, loc)
	if !ok {
		return VisitSample{}, &InvalidSampleError{Index: i, Field: "timestamp", Reason: "is not ISO-8601"}
	}

	var duration *float64
	if r.DurationMinutes != nil {
		d := *r.DurationMinutes
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return VisitSample{}, &InvalidSampleError{Index: i, Field: "duration_minutes", Reason: "must be a non-negative number"}
		}
		duration = &d
	}

	return VisitSample{
		Latitude:        lat,
		Longitude:       lon,
		Timestamp:       t,
		DurationMinutes: duration,
	}, nil
}

func parseTimestamp(ts string, loc *time.Location) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		if loc != nil {
			t = t.In(loc)
		}
		return t, true
	}

	in := loc
	if in == nil {
		in = time.UTC
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, ts, in); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
