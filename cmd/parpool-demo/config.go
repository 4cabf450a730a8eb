package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config describes the four demo scenarios. Zero fields fall back to the
// defaults below, so a partial file is fine.
type Config struct {
	Download DownloadConfig `yaml:"download"`
	Primes   PrimesConfig   `yaml:"primes"`
	Counter  CounterConfig  `yaml:"counter"`
	Queue    QueueConfig    `yaml:"queue"`
}

// DownloadConfig drives the I/O-bound pool demo.
type DownloadConfig struct {
	Items   int    `yaml:"items"`
	Workers int    `yaml:"workers"`
	Delay   string `yaml:"delay"`
}

// PrimesConfig drives the CPU-bound pool demo. Workers defaults to the
// logical CPU count; inputs are Limit, Limit+Step, Limit+2*Step, ...
type PrimesConfig struct {
	Workers int `yaml:"workers"`
	Inputs  int `yaml:"inputs"`
	Limit   int `yaml:"limit"`
	Step    int `yaml:"step"`
}

// CounterConfig drives the locked shared-counter demo.
type CounterConfig struct {
	Workers    int `yaml:"workers"`
	Increments int `yaml:"increments"`
}

// QueueConfig drives the producer/consumer drain demo.
type QueueConfig struct {
	Tasks   int `yaml:"tasks"`
	Workers int `yaml:"workers"`
}

// DefaultConfig mirrors the sizes the demos have always used.
func DefaultConfig() Config {
	return Config{
		Download: DownloadConfig{Items: 10, Workers: 5, Delay: "200ms"},
		Primes:   PrimesConfig{Workers: 0, Inputs: 0, Limit: 750_000, Step: 5_000},
		Counter:  CounterConfig{Workers: 5, Increments: 100_000},
		Queue:    QueueConfig{Tasks: 5, Workers: 3},
	}
}

// LoadConfig reads a YAML scenario file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Download.Items < 0 || c.Download.Workers < 1 {
		return fmt.Errorf("download: items must be >= 0 and workers >= 1")
	}
	if _, err := c.Download.delay(); err != nil {
		return fmt.Errorf("download: invalid delay: %w", err)
	}
	if c.Counter.Workers < 1 || c.Counter.Increments < 1 {
		return fmt.Errorf("counter: workers and increments must be >= 1")
	}
	if c.Queue.Tasks < 0 || c.Queue.Workers < 1 {
		return fmt.Errorf("queue: tasks must be >= 0 and workers >= 1")
	}
	return nil
}

func (d *DownloadConfig) delay() (time.Duration, error) {
	if d.Delay == "" {
		return 200 * time.Millisecond, nil
	}
	return time.ParseDuration(d.Delay)
}
