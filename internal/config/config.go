// Package config loads service configuration with koanf.
//
// Precedence, lowest to highest:
//  1. embedded defaults.yaml
//  2. an optional YAML file (--config or HABITMINER_CONFIG)
//  3. HABITMINER_* environment variables
//
// Environment variables map to keys by splitting on the first underscore after
// the prefix: HABITMINER_MINING_CLUSTER_RADIUS -> mining.cluster_radius.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/jengzang/habitminer/internal/analysis/habit"
	"github.com/jengzang/habitminer/internal/logging"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "HABITMINER_"

// ConfigFileEnv names the environment variable holding a config file path
const ConfigFileEnv = "HABITMINER_CONFIG"

const maxConfigFileSize = 1024 * 1024

//go:embed defaults.yaml
var defaultsYAML []byte

// Config is the application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Auth     AuthConfig     `koanf:"auth"`
	Naming   NamingConfig   `koanf:"naming"`
	Mining   MiningConfig   `koanf:"mining"`
	Log      logging.Config `koanf:"log"`
}

// ServerConfig configures the HTTP server
type ServerConfig struct {
	Addr         string        `koanf:"addr"`
	Mode         string        `koanf:"mode"` // gin mode: debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	RateLimit    float64       `koanf:"rate_limit"` // Requests per second per IP
	RateBurst    int           `koanf:"rate_burst"`
}

// DatabaseConfig configures SQLite
type DatabaseConfig struct {
	Path          string `koanf:"path"`
	MaxOpenConns  int    `koanf:"max_open_conns"`
	BusyTimeoutMS int    `koanf:"busy_timeout_ms"`
}

// AuthConfig configures bearer token validation
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

// NamingConfig configures the habit naming collaborator
type NamingConfig struct {
	Provider    string        `koanf:"provider"` // openai or template
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	Model       string        `koanf:"model"`
	Temperature float32       `koanf:"temperature"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxWords    int           `koanf:"max_words"`
}

// MiningConfig holds the engine parameters and the stored-visit window
type MiningConfig struct {
	ClusterRadius        float64 `koanf:"cluster_radius"`
	MinClusterSize       int     `koanf:"min_cluster_size"`
	ConfidenceSaturation float64 `koanf:"confidence_saturation"`
	ConfidenceThreshold  float64 `koanf:"confidence_threshold"`
	PlaceKeyScale        float64 `koanf:"place_key_scale"`
	MinSamples           int     `koanf:"min_samples"`
	TimeOfDayMode        string  `koanf:"time_of_day_mode"`
	LookbackDays         int     `koanf:"lookback_days"`
	MaxSamples           int     `koanf:"max_samples"`
	Timezone             string  `koanf:"timezone"` // IANA name; empty keeps each timestamp's own offset
}

// Engine converts the mining section to the engine configuration
func (m MiningConfig) Engine() habit.Config {
	return habit.Config{
		ClusterRadius:        m.ClusterRadius,
		MinClusterSize:       m.MinClusterSize,
		ConfidenceSaturation: m.ConfidenceSaturation,
		ConfidenceThreshold:  m.ConfidenceThreshold,
		PlaceKeyScale:        m.PlaceKeyScale,
		MinSamples:           m.MinSamples,
		TimeOfDayMode:        habit.TimeOfDayMode(m.TimeOfDayMode),
	}
}

// Location resolves the configured timezone, nil when unset
func (m MiningConfig) Location() (*time.Location, error) {
	if m.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid mining timezone %q: %w", m.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration. An empty path falls back to HABITMINER_CONFIG;
// when both are empty only defaults and environment apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultsYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigFileEnv)
	}
	if path != "" {
		content, err := readConfigFile(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envKey maps HABITMINER_SECTION_FIELD_NAME to section.field_name.
// HABITMINER_CONFIG is not a key and maps to nothing.
func envKey(s string) string {
	if s == ConfigFileEnv {
		return ""
	}
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, field, ok := strings.Cut(lower, "_")
	if !ok {
		return lower
	}
	return section + "." + field
}

func readConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("config path %s is a directory", path)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// Validate checks the configuration for impossible values
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.RateLimit <= 0 || c.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_limit must be positive and server.rate_burst at least 1")
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	switch c.Naming.Provider {
	case "openai", "template":
	default:
		return fmt.Errorf("naming.provider must be openai or template, got %q", c.Naming.Provider)
	}
	if c.Naming.MaxWords < 1 {
		return fmt.Errorf("naming.max_words must be at least 1, got %d", c.Naming.MaxWords)
	}
	if err := c.Mining.Engine().Validate(); err != nil {
		return fmt.Errorf("mining: %w", err)
	}
	if c.Mining.LookbackDays < 0 || c.Mining.MaxSamples < 0 {
		return fmt.Errorf("mining.lookback_days and mining.max_samples must not be negative")
	}
	if _, err := c.Mining.Location(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// UseOpenAINamer reports whether the OpenAI namer should be used
func (c *Config) UseOpenAINamer() bool {
	return c.Naming.Provider == "openai" && c.Naming.APIKey != ""
}
