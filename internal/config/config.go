package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"hummingbird-backtest/internal/backtest"
)

// Config is the on-disk run configuration shape (YAML).
type Config struct {
	// DataFile is the CSV bar series to backtest against.
	DataFile string       `yaml:"data_file"`
	Engine   EngineConfig `yaml:"engine"`
	// Route is optional. When present, the estimated one-way latency for
	// the route overrides Engine.LatencyMS.
	Route    *RouteConfig   `yaml:"route"`
	Strategy StrategyConfig `yaml:"strategy"`
}

type EngineConfig struct {
	LatencyMS    float64 `yaml:"latency_ms"`
	SlippageBPS  float64 `yaml:"slippage_bps"`
	StartingCash float64 `yaml:"starting_cash"`
}

type RouteConfig struct {
	Origin      string  `yaml:"origin"`
	Destination string  `yaml:"destination"`
	DistanceKM  float64 `yaml:"distance_km"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// Keep configs concise: an omitted starting_cash gets the conventional
	// default rather than failing validation.
	if c.Engine.StartingCash == 0 {
		c.Engine.StartingCash = 100000
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.DataFile == "" {
		return errors.New("data_file is required")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	if err := c.Engine.ToParams().Validate(); err != nil {
		return fmt.Errorf("engine config invalid: %w", err)
	}
	if c.Route != nil {
		if c.Route.Origin == "" || c.Route.Destination == "" {
			return errors.New("route.origin and route.destination are required")
		}
		if c.Route.DistanceKM <= 0 {
			return errors.New("route.distance_km must be > 0")
		}
	}
	return nil
}

func (e EngineConfig) ToParams() backtest.Params {
	return backtest.Params{
		LatencyMS:    e.LatencyMS,
		SlippageBPS:  e.SlippageBPS,
		StartingCash: decimal.NewFromFloat(e.StartingCash),
	}
}
