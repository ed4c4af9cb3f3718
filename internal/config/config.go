// Package config loads the optional yaml config file. Flags remain usable;
// non-zero config values override them in main.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type SPI struct {
	Dev string `yaml:"dev"` // e.g. /dev/spidev0.0, empty picks the first port
}

type Buttons struct {
	APin      string `yaml:"a_pin"` // gpioreg name, e.g. GPIO17
	BPin      string `yaml:"b_pin"`
	ActiveLow bool   `yaml:"active_low"` // buttons to ground with pull-ups
}

type Config struct {
	Driver    string  `yaml:"driver"` // "spi" | "sim"
	SPI       SPI     `yaml:"spi,omitempty"`
	Buttons   Buttons `yaml:"buttons"`
	StorePath string  `yaml:"store_path"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
