// Package config loads the service configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/PaulPoum/onacc-climate-risk-monitoring/station"
)

// Config holds all application configuration.
type Config struct {
	DataDir  string `yaml:"data_dir"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ForecastCron  string `yaml:"forecast_cron"`
		ThresholdCron string `yaml:"threshold_cron"`
	} `yaml:"schedule"`
	Calibration struct {
		Seed      int64 `yaml:"seed"`
		Complexes int   `yaml:"complexes"`
		Samples   int   `yaml:"samples"`
	} `yaml:"calibration"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Stations []station.Watershed `yaml:"stations"`
}

// Load reads config from a YAML file, then applies environment overrides.
// A missing file is not an error; defaults and environment carry the run.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.DataDir = "data"
	cfg.Schedule.ForecastCron = "0 6 * * *"
	cfg.Schedule.ThresholdCron = "0 3 * * 1"
	cfg.Calibration.Samples = 500
	cfg.Log.Level = "info"

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("ONACC_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("ONACC_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("ONACC_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ONACC_CALIB_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Calibration.Seed = seed
		}
	}
	return cfg, nil
}

// Registry merges the configured stations over the built-in basin defaults.
func (c *Config) Registry() station.Registry {
	reg := station.Defaults()
	for _, w := range c.Stations {
		reg[w.ID] = w
	}
	return reg
}
