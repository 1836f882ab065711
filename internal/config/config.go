// Package config handles configuration loading for valuekit.
// It supports YAML config files, a .env file and environment variable
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. VALUEKIT_API_PORT.
const EnvPrefix = "VALUEKIT"

// Config represents the complete application configuration.
type Config struct {
	API        APIConfig        `mapstructure:"api"        yaml:"api"`
	Valuation  ValuationConfig  `mapstructure:"valuation"  yaml:"valuation"`
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Cache      CacheConfig      `mapstructure:"cache"      yaml:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// ValuationConfig holds defaults for the deterministic calculators.
type ValuationConfig struct {
	ProjectionYears int       `mapstructure:"projection_years" yaml:"projection_years"`
	SweepSteps      int       `mapstructure:"sweep_steps"      yaml:"sweep_steps"`    // option spot sweep
	PremiumDeltas   []float64 `mapstructure:"premium_deltas"   yaml:"premium_deltas"` // percentage points
}

// SimulationConfig holds Monte Carlo settings.
type SimulationConfig struct {
	DefaultSteps    int     `mapstructure:"default_steps"      yaml:"default_steps"`
	DefaultPaths    int     `mapstructure:"default_paths"      yaml:"default_paths"`
	MaxPaths        int     `mapstructure:"max_paths"          yaml:"max_paths"`
	MaxSteps        int     `mapstructure:"max_steps"          yaml:"max_steps"`
	Workers         int     `mapstructure:"workers"            yaml:"workers"`
	Shock           string  `mapstructure:"shock"              yaml:"shock"` // "uniform" or "gaussian"
	RateLimitPerSec float64 `mapstructure:"rate_limit_per_sec" yaml:"rate_limit_per_sec"`
}

// CacheConfig holds the result cache settings.
type CacheConfig struct {
	TTL int `mapstructure:"ttl" yaml:"ttl"` // seconds, 0 disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // "debug", "info", "warn", "error"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.valuekit/config.yaml (home directory)
//  3. /etc/valuekit/config.yaml (system)
//
// A .env file in the working directory is loaded into the environment
// first. Environment variables override config file values.
// Format: VALUEKIT_<SECTION>_<KEY>, e.g., VALUEKIT_SIMULATION_WORKERS
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".valuekit"))
	v.AddConfigPath("/etc/valuekit")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// Defaults returns the configuration used when no file or override is set.
func Defaults() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading %s: %w", path, err)
	}
	return nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Valuation defaults
	v.SetDefault("valuation.projection_years", 5)
	v.SetDefault("valuation.sweep_steps", 10)
	v.SetDefault("valuation.premium_deltas", []float64{-10, -5, 0, 5, 10})

	// Simulation defaults
	v.SetDefault("simulation.default_steps", 252) // one trading year
	v.SetDefault("simulation.default_paths", 100)
	v.SetDefault("simulation.max_paths", 10000)
	v.SetDefault("simulation.max_steps", 10000)
	v.SetDefault("simulation.workers", 8)
	v.SetDefault("simulation.shock", "uniform")
	v.SetDefault("simulation.rate_limit_per_sec", 20)

	// Cache defaults
	v.SetDefault("cache.ttl", 300) // 5 minutes

	// Logging defaults
	v.SetDefault("logging.level", "info")
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.API.Port <= 0 || c.API.Port > 65535:
		return fmt.Errorf("invalid api.port %d", c.API.Port)
	case c.Valuation.ProjectionYears <= 0:
		return fmt.Errorf("valuation.projection_years must be positive, got %d", c.Valuation.ProjectionYears)
	case c.Valuation.SweepSteps <= 0:
		return fmt.Errorf("valuation.sweep_steps must be positive, got %d", c.Valuation.SweepSteps)
	case c.Simulation.DefaultSteps <= 0 || c.Simulation.DefaultPaths <= 0:
		return fmt.Errorf("simulation defaults must be positive")
	case c.Simulation.DefaultPaths > c.Simulation.MaxPaths:
		return fmt.Errorf("simulation.default_paths %d exceeds max_paths %d", c.Simulation.DefaultPaths, c.Simulation.MaxPaths)
	case c.Simulation.DefaultSteps > c.Simulation.MaxSteps:
		return fmt.Errorf("simulation.default_steps %d exceeds max_steps %d", c.Simulation.DefaultSteps, c.Simulation.MaxSteps)
	case c.Simulation.Shock != "uniform" && c.Simulation.Shock != "gaussian":
		return fmt.Errorf("simulation.shock must be uniform or gaussian, got %q", c.Simulation.Shock)
	case c.Cache.TTL < 0:
		return fmt.Errorf("cache.ttl must be non-negative")
	}
	return nil
}

// Addr is the host:port the API server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.API.Host, c.API.Port)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
