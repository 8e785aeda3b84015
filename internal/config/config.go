package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Data struct {
		Source       string   `yaml:"source"` // "synthetic" or "yahoo"
		Symbols      []string `yaml:"symbols"`
		LookbackDays int      `yaml:"lookback_days"`
		Seed         int64    `yaml:"seed"`
	} `yaml:"data"`
	OpenAI struct {
		Model string `yaml:"model"`
	} `yaml:"openai"`
	Output struct {
		ChartDir   string `yaml:"chart_dir"`
		ReportPath string `yaml:"report_path"`
	} `yaml:"output"`
	Request struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxTurns       uint64 `yaml:"max_turns"`
	} `yaml:"request"`
	Refresh struct {
		Cron string `yaml:"cron"` // empty disables the background refresh
	} `yaml:"refresh"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.Data.Source = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("CHART_DIR"); v != "" {
		cfg.Output.ChartDir = v
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Request.TimeoutSeconds = n
		} else {
			log.Printf("[WARN] ignoring invalid REQUEST_TIMEOUT %q: %v", v, err)
		}
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/stocks.db"
	}
	if cfg.Data.Source == "" {
		cfg.Data.Source = "synthetic"
	}
	if len(cfg.Data.Symbols) == 0 {
		cfg.Data.Symbols = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "META"}
	}
	if cfg.Data.LookbackDays == 0 {
		cfg.Data.LookbackDays = 365
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Output.ChartDir == "" {
		cfg.Output.ChartDir = "visualizations"
	}
	if cfg.Output.ReportPath == "" {
		cfg.Output.ReportPath = "report.md"
	}
	if cfg.Request.TimeoutSeconds == 0 {
		cfg.Request.TimeoutSeconds = 120
	}
	if cfg.Request.MaxTurns == 0 {
		cfg.Request.MaxTurns = 10
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Data.Source != "synthetic" && c.Data.Source != "yahoo" {
		return fmt.Errorf("data.source must be \"synthetic\" or \"yahoo\", got %q", c.Data.Source)
	}
	if len(c.Data.Symbols) == 0 {
		return fmt.Errorf("data.symbols must not be empty")
	}
	if c.Data.LookbackDays <= 0 {
		return fmt.Errorf("data.lookback_days must be positive")
	}
	if c.Request.TimeoutSeconds <= 0 {
		return fmt.Errorf("request.timeout_seconds must be positive")
	}
	return nil
}
