// Package config loads the dual-writer's file configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration of the dual-writer.
type File struct {
	DualWrite DualWriteConfig `yaml:"dual_write"`
	Shadow    ShadowConfig    `yaml:"shadow"`
	Origin    EndpointConfig  `yaml:"origin"`
	Target    EndpointConfig  `yaml:"target"`
}

// DualWriteConfig carries the feature flag and the sampling percentage.
type DualWriteConfig struct {
	Enabled    bool `yaml:"enabled"`
	Percentage int  `yaml:"percentage"`
}

// ShadowConfig sizes the shadow worker pool.
type ShadowConfig struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

// EndpointConfig identifies one cluster endpoint.
type EndpointConfig struct {
	URL  string `yaml:"url"`
	Name string `yaml:"name"`
}

// Load reads a YAML config file, applies environment overrides, and
// validates the result.
//
// Overrides: MIRRORKV_DUAL_WRITE_ENABLED, MIRRORKV_DUAL_WRITE_PERCENTAGE.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var conf File
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (f *File) applyEnv() error {
	if v := os.Getenv("MIRRORKV_DUAL_WRITE_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid MIRRORKV_DUAL_WRITE_ENABLED %q: %w", v, err)
		}
		f.DualWrite.Enabled = enabled
	}

	if v := os.Getenv("MIRRORKV_DUAL_WRITE_PERCENTAGE"); v != "" {
		pct, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid MIRRORKV_DUAL_WRITE_PERCENTAGE %q: %w", v, err)
		}
		f.DualWrite.Percentage = pct
	}

	return nil
}

// Validate checks field ranges. Endpoint URLs are required only when
// dual-write is enabled; a disabled decorator may omit the origin.
func (f *File) Validate() error {
	if f.DualWrite.Percentage < 0 || f.DualWrite.Percentage > 100 {
		return fmt.Errorf("dual_write.percentage must be in [0,100], got %d", f.DualWrite.Percentage)
	}
	if f.Shadow.Workers < 0 {
		return fmt.Errorf("shadow.workers must not be negative, got %d", f.Shadow.Workers)
	}
	if f.Shadow.QueueSize < 0 {
		return fmt.Errorf("shadow.queue_size must not be negative, got %d", f.Shadow.QueueSize)
	}
	if f.Target.URL == "" {
		return fmt.Errorf("target.url is required")
	}
	if f.DualWrite.Enabled && f.Origin.URL == "" {
		return fmt.Errorf("origin.url is required when dual_write.enabled is true")
	}

	return nil
}
