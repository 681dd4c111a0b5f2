// Package config loads candleterm settings from a YAML file, with
// environment variables taking precedence over the file and flags over
// both.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full settings document.
type Config struct {
	Symbol    string `yaml:"symbol"`
	Interval  string `yaml:"interval"`
	Precision int    `yaml:"precision"`
	History   int    `yaml:"history"`
	Fit       bool   `yaml:"fit"`
	Timezone  string `yaml:"timezone"`
	Theme     Theme  `yaml:"theme"`
	Axes      Axes   `yaml:"axes"`
}

// Theme holds the chart colors as terminal color strings (hex or ANSI).
type Theme struct {
	Bull     string `yaml:"bull"`
	Bear     string `yaml:"bear"`
	BullWick string `yaml:"bull_wick"`
	BearWick string `yaml:"bear_wick"`
	Axis     string `yaml:"axis"`
}

// Axes toggles the chart gutters.
type Axes struct {
	Price bool `yaml:"price"`
	Time  bool `yaml:"time"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Symbol:    "BTCUSDT",
		Interval:  "1m",
		Precision: 3,
		History:   365,
		Fit:       false,
		Timezone:  "UTC",
		Theme: Theme{
			Bull:     "#26a641",
			Bear:     "#e05c5c",
			BullWick: "#888888",
			BearWick: "#888888",
			Axis:     "#555555",
		},
		Axes: Axes{Price: true, Time: true},
	}
}

// Load reads path (when non-empty), layers environment overrides on top
// of the defaults, and validates the result. A missing file at the
// default path is not an error; an explicitly requested file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file is fine; defaults apply.
	default:
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// defaultPath is ~/.config/candleterm/config.yaml.
func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "candleterm", "config.yaml")
}

// applyEnv layers CANDLETERM_* variables over the loaded values. Every
// settings field has a variable; unparsable numeric or boolean values
// are ignored rather than failing the load.
func applyEnv(cfg *Config) {
	envString("CANDLETERM_SYMBOL", &cfg.Symbol)
	envString("CANDLETERM_INTERVAL", &cfg.Interval)
	envInt("CANDLETERM_PRECISION", &cfg.Precision)
	envInt("CANDLETERM_HISTORY", &cfg.History)
	envBool("CANDLETERM_FIT", &cfg.Fit)
	envString("CANDLETERM_TIMEZONE", &cfg.Timezone)

	envString("CANDLETERM_THEME_BULL", &cfg.Theme.Bull)
	envString("CANDLETERM_THEME_BEAR", &cfg.Theme.Bear)
	envString("CANDLETERM_THEME_BULL_WICK", &cfg.Theme.BullWick)
	envString("CANDLETERM_THEME_BEAR_WICK", &cfg.Theme.BearWick)
	envString("CANDLETERM_THEME_AXIS", &cfg.Theme.Axis)

	envBool("CANDLETERM_AXES_PRICE", &cfg.Axes.Price)
	envBool("CANDLETERM_AXES_TIME", &cfg.Axes.Time)
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func (c Config) validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("config: symbol must not be empty")
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("config: precision %d out of range [0,12]", c.Precision)
	}
	if c.History < 1 {
		return fmt.Errorf("config: history must be at least 1, got %d", c.History)
	}
	return nil
}
