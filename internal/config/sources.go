package config

import (
	"fmt"
	"os"
	"strings"
)

// SettingSource represents where a setting's value comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective setting for `valuekit status`.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// Describe lists the main settings of cfg and where each came from.
func Describe(cfg *Config) []SettingStatus {
	def := Defaults()
	return []SettingStatus{
		describe("api.host", cfg.API.Host, def.API.Host),
		describe("api.port", cfg.API.Port, def.API.Port),
		describe("api.cors_origins", strings.Join(cfg.API.CORSOrigins, ","), strings.Join(def.API.CORSOrigins, ",")),
		describe("valuation.projection_years", cfg.Valuation.ProjectionYears, def.Valuation.ProjectionYears),
		describe("valuation.sweep_steps", cfg.Valuation.SweepSteps, def.Valuation.SweepSteps),
		describe("simulation.default_steps", cfg.Simulation.DefaultSteps, def.Simulation.DefaultSteps),
		describe("simulation.default_paths", cfg.Simulation.DefaultPaths, def.Simulation.DefaultPaths),
		describe("simulation.max_paths", cfg.Simulation.MaxPaths, def.Simulation.MaxPaths),
		describe("simulation.max_steps", cfg.Simulation.MaxSteps, def.Simulation.MaxSteps),
		describe("simulation.workers", cfg.Simulation.Workers, def.Simulation.Workers),
		describe("simulation.shock", cfg.Simulation.Shock, def.Simulation.Shock),
		describe("simulation.rate_limit_per_sec", cfg.Simulation.RateLimitPerSec, def.Simulation.RateLimitPerSec),
		describe("cache.ttl", cfg.Cache.TTL, def.Cache.TTL),
		describe("logging.level", cfg.Logging.Level, def.Logging.Level),
	}
}

// describe attributes a value to the environment when its variable is
// set, to a config file when it differs from the default.
func describe[T comparable](key string, value, def T) SettingStatus {
	s := SettingStatus{Key: key, Value: fmt.Sprint(value)}
	switch {
	case os.Getenv(EnvVar(key)) != "":
		s.Source = SourceEnv
	case value != def:
		s.Source = SourceConfig
	default:
		s.Source = SourceDefault
	}
	return s
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
