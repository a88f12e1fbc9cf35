// Package config loads toolkit configuration from defaults, an optional
// YAML file, and YIELDCURVE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete CLI configuration.
type Config struct {
	FRED  FREDConfig  `mapstructure:"fred"`
	Store StoreConfig `mapstructure:"store"`
	Plot  PlotConfig  `mapstructure:"plot"`
	Fit   FitConfig   `mapstructure:"fit"`
}

// FREDConfig controls the data loader.
type FREDConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	UserAgent  string `mapstructure:"user_agent"`
	TimeoutSec int    `mapstructure:"timeout_sec"`
}

// StoreConfig controls the curve history database.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// PlotConfig controls chart rendering.
type PlotConfig struct {
	Title  string `mapstructure:"title"`
	Points int    `mapstructure:"points"`
}

// FitConfig controls metric and display grids.
type FitConfig struct {
	GridPoints int `mapstructure:"grid_points"`
}

// Load reads configuration from ./config.yaml or ~/.yieldcurve/config.yaml
// if present, with environment overrides (YIELDCURVE_FRED_BASE_URL etc).
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(filepath.Join(homeDir(), ".yieldcurve"))

	v.SetEnvPrefix("YIELDCURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: %w", err)
		}
		// No config file is fine; defaults + env apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile reads configuration from an explicit path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("YIELDCURVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("fred.base_url", "https://fred.stlouisfed.org/graph/fredgraph.csv")
	v.SetDefault("fred.user_agent", "yieldcurve/1.0")
	v.SetDefault("fred.timeout_sec", 30)

	v.SetDefault("store.path", "yieldcurve.db")

	v.SetDefault("plot.title", "US Treasury Yield Curve")
	v.SetDefault("plot.points", 300)

	v.SetDefault("fit.grid_points", 300)
}

func homeDir() string {
	h, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return h
}
