// Package config provides configuration loading and access for the oil
// spill simulation: embedded YAML defaults, an optional override file, and
// derived values computed once after load.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"oilspill/oil"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Spill       SpillConfig       `yaml:"spill"`
	Environment EnvironmentConfig `yaml:"environment"`
	Engine      EngineConfig      `yaml:"engine"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// SpillConfig describes the release itself.
type SpillConfig struct {
	Lat          float64 `yaml:"lat"`
	Lng          float64 `yaml:"lng"`
	OilVolume    float64 `yaml:"oil_volume"` // tonnes
	OilType      string  `yaml:"oil_type"`   // crude|fuel|diesel|gasoline
	Mode         string  `yaml:"mode"`       // instant|continuous
	DurationHour float64 `yaml:"duration_hours"`
}

// EnvironmentConfig describes the scalar-fallback and grid environment.
type EnvironmentConfig struct {
	WindSpeed           float64 `yaml:"wind_speed"`    // m/s
	WindDir             float64 `yaml:"wind_dir"`       // degrees, meteorological "from"
	CurrentSpeed        float64 `yaml:"current_speed"`  // m/s
	CurrentDir          float64 `yaml:"current_dir"`    // degrees, oceanographic "to"
	WaterTemp           float64 `yaml:"water_temp"`     // °C
	UseGridData         bool    `yaml:"use_grid_data"`
	GridDir             string  `yaml:"grid_dir"`
	GridTimeOffsetHours float64 `yaml:"grid_time_offset_hours"`
}

// EngineConfig describes the integrator/driver knobs.
type EngineConfig struct {
	ParticleCount   int   `yaml:"particle_count"`
	TimeStepSeconds int   `yaml:"time_step_seconds"`
	MaxTimeSeconds  int   `yaml:"max_time_seconds"`
	PlaybackSpeed   int   `yaml:"playback_speed"`
	Seed            int64 `yaml:"seed"` // 0 = random seed
}

// TelemetryConfig controls windowed stats aggregation and CSV export.
type TelemetryConfig struct {
	StatsWindowSeconds float64 `yaml:"stats_window_seconds"`
	LogStats           bool    `yaml:"log_stats"`
	OutputDir          string  `yaml:"output_dir"`
}

// DerivedConfig holds values computed once after load.
type DerivedConfig struct {
	OilProperties oil.Properties
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into the same struct - only overwrites fields present
		// in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects the "invalid configuration" error-taxonomy entries: the
// driver must refuse to start before Initialize runs.
func (c *Config) Validate() error {
	if c.Engine.ParticleCount <= 0 {
		return fmt.Errorf("config: particle_count must be positive, got %d", c.Engine.ParticleCount)
	}
	if c.Engine.TimeStepSeconds <= 0 {
		return fmt.Errorf("config: time_step_seconds must be positive, got %d", c.Engine.TimeStepSeconds)
	}
	if c.Engine.MaxTimeSeconds <= 0 {
		return fmt.Errorf("config: max_time_seconds must be positive, got %d", c.Engine.MaxTimeSeconds)
	}
	if c.Engine.PlaybackSpeed <= 0 {
		return fmt.Errorf("config: playback_speed must be positive, got %d", c.Engine.PlaybackSpeed)
	}
	if !oil.Valid(oil.Kind(c.Spill.OilType)) {
		return fmt.Errorf("config: unknown oil_type %q", c.Spill.OilType)
	}
	switch c.Spill.Mode {
	case "instant", "continuous":
	default:
		return fmt.Errorf("config: unknown spill mode %q", c.Spill.Mode)
	}
	if c.Spill.Mode == "continuous" && c.Spill.DurationHour <= 0 {
		return fmt.Errorf("config: duration_hours must be positive for continuous spills, got %v", c.Spill.DurationHour)
	}
	return nil
}

// computeDerived calculates values derived from the loaded config.
func (c *Config) computeDerived() {
	props, err := oil.Lookup(oil.Kind(c.Spill.OilType))
	if err != nil {
		// Validate already rejected unknown kinds; this can't happen on a
		// validated config, but leave Derived zeroed rather than panic.
		return
	}
	c.Derived.OilProperties = props
}

// WriteYAML writes the configuration to a YAML file, used by the telemetry
// output manager to snapshot the run's configuration.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
