package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type runConfig struct {
	RunID          string `json:"run_id" toml:"run_id"`
	Population     int    `json:"population" toml:"population"`
	BitLength      int    `json:"bit_length" toml:"bit_length"`
	Seed           int64  `json:"seed" toml:"seed"`
	MaxGenerations int    `json:"max_generations" toml:"max_generations"`
	Quiet          bool   `json:"quiet" toml:"quiet"`
	LogFormat      string `json:"log_format" toml:"log_format"`
	LogLevel       string `json:"log_level" toml:"log_level"`
	MetricsAddr    string `json:"metrics_addr" toml:"metrics_addr"`
}

func loadOrDefaultRunConfig(path string) (runConfig, error) {
	if path == "" {
		return runConfig{}, nil
	}
	return loadRunConfig(path)
}

// loadRunConfig decodes a .json or .toml run config. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func loadRunConfig(path string) (runConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return runConfig{}, err
	}

	var cfg runConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return runConfig{}, fmt.Errorf("decode %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return runConfig{}, fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return runConfig{}, fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
		}
	default:
		return runConfig{}, fmt.Errorf("unsupported config format %q (want .json or .toml)", ext)
	}
	return cfg, nil
}

// applyFlags overlays flag values: explicitly set flags always win, flag
// defaults only fill fields the config file left empty.
func (c *runConfig) applyFlags(set map[string]bool, flags runConfig) {
	if set["run-id"] || c.RunID == "" {
		c.RunID = flags.RunID
	}
	if set["pop"] || c.Population == 0 {
		c.Population = flags.Population
	}
	if set["len"] || c.BitLength == 0 {
		c.BitLength = flags.BitLength
	}
	if set["seed"] || c.Seed == 0 {
		c.Seed = flags.Seed
	}
	if set["max-gens"] || c.MaxGenerations == 0 {
		c.MaxGenerations = flags.MaxGenerations
	}
	if set["quiet"] {
		c.Quiet = flags.Quiet
	}
	if set["log-format"] || c.LogFormat == "" {
		c.LogFormat = flags.LogFormat
	}
	if set["log-level"] || c.LogLevel == "" {
		c.LogLevel = flags.LogLevel
	}
	if set["metrics-addr"] || c.MetricsAddr == "" {
		c.MetricsAddr = flags.MetricsAddr
	}
}
