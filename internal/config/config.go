package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Account holds the risk-budget settings dollar sizing is derived from.
type Account struct {
	Size           float64 `yaml:"size"`             // Default: 25000
	MaxRiskPercent float64 `yaml:"max_risk_percent"` // Default: 2.0
}

// Config is the top-level application configuration.
type Config struct {
	Account   Account `yaml:"account"`
	Strategy  string  `yaml:"strategy"`  // "credit" or "debit"
	Benchmark string  `yaml:"benchmark"` // Benchmark index symbol for regime detection
	DataDir   string  `yaml:"data_dir"`  // Directory of exported bar/chain files

	Scan struct {
		Concurrency int `yaml:"concurrency"` // Default: 8
	} `yaml:"scan"`
}

// Default returns the production defaults used when no file is supplied.
func Default() *Config {
	c := &Config{
		Account:   Account{Size: 25000, MaxRiskPercent: 2.0},
		Strategy:  "credit",
		Benchmark: "SPY",
		DataDir:   "data",
	}
	c.Scan.Concurrency = 8
	return c
}

// Load reads a YAML config file, filling unset fields from defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Account.Size <= 0 {
		return fmt.Errorf("account size must be positive, got %.2f", c.Account.Size)
	}
	if c.Account.MaxRiskPercent <= 0 || c.Account.MaxRiskPercent > 100 {
		return fmt.Errorf("max risk percent must be in (0,100], got %.2f", c.Account.MaxRiskPercent)
	}
	if c.Strategy != "credit" && c.Strategy != "debit" {
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
	if c.Scan.Concurrency <= 0 {
		c.Scan.Concurrency = 8
	}
	return nil
}
