package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/szeremeta1/pisag/drivers"
)

// Config is the YAML-loaded bench configuration for cmd/pocsagtx. Loading
// this from disk is the only place in the repo that touches a config
// file; the core packages never parse YAML.
type Config struct {
	System struct {
		FrequencyMHz  float64 `yaml:"frequency_mhz"`
		SampleRateMHz float64 `yaml:"sample_rate_mhz"`
		IFGainDB      float64 `yaml:"if_gain_db"`
		TXPowerDBM    float64 `yaml:"tx_power_dbm"`
		DeviationHz   float64 `yaml:"deviation_hz"`
		MonitorSec    float64 `yaml:"monitor_interval_seconds"`
	} `yaml:"system"`
	Pocsag struct {
		BaudRate int `yaml:"baud_rate"`
	} `yaml:"pocsag"`
	Driver struct {
		Kind       string `yaml:"kind"`
		Subprocess struct {
			ScriptPath string `yaml:"script_path"`
			Python     string `yaml:"python"`
			DryRun     bool   `yaml:"dry_run"`
		} `yaml:"subprocess"`
	} `yaml:"driver"`
}

// DefaultConfig returns the bench defaults used when no file is given.
func DefaultConfig() Config {
	var cfg Config
	cfg.System.FrequencyMHz = 439.9875
	cfg.System.SampleRateMHz = 2
	cfg.System.IFGainDB = 40
	cfg.System.TXPowerDBM = 10
	cfg.System.DeviationHz = 4500
	cfg.System.MonitorSec = 5
	cfg.Pocsag.BaudRate = 1200
	cfg.Driver.Kind = string(drivers.KindNoop)
	return cfg
}

// LoadConfig reads and parses a YAML config file, falling back to
// DefaultConfig's values for anything left unset.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
