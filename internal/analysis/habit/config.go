package habit

import (
	"fmt"

	"github.com/jengzang/habitminer/internal/spatial"
)

// TimeOfDayMode selects how member clock times are averaged
type TimeOfDayMode string

const (
	// TimeOfDayArithmetic averages hours and minutes independently.
	// 23:50 and 00:10 average to about 12:00.
	TimeOfDayArithmetic TimeOfDayMode = "arithmetic"
	// TimeOfDayCircular averages minute-of-day on the 24h clock circle
	TimeOfDayCircular TimeOfDayMode = "circular"
)

// Config holds the mining parameters
type Config struct {
	// ClusterRadius is ε in raw degrees; 0.001 is roughly 100 m at mid-latitudes
	ClusterRadius float64
	// MinClusterSize is the smallest member count a place needs to survive clustering
	MinClusterSize int
	// ConfidenceSaturation is the visit count at which confidence reaches 1.0
	ConfidenceSaturation float64
	// ConfidenceThreshold is exclusive: a pattern needs confidence > threshold
	ConfidenceThreshold float64
	// PlaceKeyScale quantizes place centers for dedup
	PlaceKeyScale float64
	// MinSamples gates Miner.Learn; 0 disables the gate
	MinSamples    int
	TimeOfDayMode TimeOfDayMode
}

// DefaultConfig returns the default mining configuration
func DefaultConfig() Config {
	return Config{
		ClusterRadius:        0.001,
		MinClusterSize:       3,
		ConfidenceSaturation: 10,
		ConfidenceThreshold:  0.6,
		PlaceKeyScale:        spatial.DefaultPlaceKeyScale,
		MinSamples:           10,
		TimeOfDayMode:        TimeOfDayArithmetic,
	}
}

// Validate checks the configuration for impossible values
func (c Config) Validate() error {
	if c.ClusterRadius <= 0 {
		return fmt.Errorf("cluster radius must be positive, got %v", c.ClusterRadius)
	}
	if c.MinClusterSize < 1 {
		return fmt.Errorf("min cluster size must be at least 1, got %d", c.MinClusterSize)
	}
	if c.ConfidenceSaturation <= 0 {
		return fmt.Errorf("confidence saturation must be positive, got %v", c.ConfidenceSaturation)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold must be in [0,1], got %v", c.ConfidenceThreshold)
	}
	if c.PlaceKeyScale <= 0 {
		return fmt.Errorf("place key scale must be positive, got %v", c.PlaceKeyScale)
	}
	if c.MinSamples < 0 {
		return fmt.Errorf("min samples must not be negative, got %d", c.MinSamples)
	}
	switch c.TimeOfDayMode {
	case TimeOfDayArithmetic, TimeOfDayCircular:
	default:
		return fmt.Errorf("unknown time of day mode %q", c.TimeOfDayMode)
	}
	return nil
}
