package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"tradethrust/internal/engine"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Data struct {
		AlpacaKey    string `yaml:"alpaca_key"`
		AlpacaSecret string `yaml:"alpaca_secret"`
		Benchmark    string `yaml:"benchmark"`
		HistoryDays  int    `yaml:"history_days"`
		DemoMode     bool   `yaml:"demo_mode"`
	} `yaml:"data"`
	Watchlist struct {
		File string   `yaml:"file"`
		Seed []string `yaml:"seed"`
	} `yaml:"watchlist"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Listen string `yaml:"listen"`
		Debug  bool   `yaml:"debug"`
	} `yaml:"server"`
	Analysis struct {
		Preset         string  `yaml:"preset"` // default, strict, lenient
		PortfolioValue float64 `yaml:"portfolio_value"`
		RiskFraction   float64 `yaml:"risk_fraction"`
		Workers        int     `yaml:"workers"`
		CacheTTLMin    int     `yaml:"cache_ttl_min"`
	} `yaml:"analysis"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.Data.AlpacaKey = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.Data.AlpacaSecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("PORTFOLIO_VALUE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Analysis.PortfolioValue = f
		}
	}
	if v := os.Getenv("ANALYSIS_PRESET"); v != "" {
		cfg.Analysis.Preset = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_LISTEN"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("DEMO_MODE"); v != "" {
		cfg.Data.DemoMode = v == "1" || v == "true"
	}

	// Defaults
	if cfg.Data.Benchmark == "" {
		cfg.Data.Benchmark = "SPY"
	}
	if cfg.Data.HistoryDays == 0 {
		cfg.Data.HistoryDays = 400
	}
	if cfg.Watchlist.File == "" {
		cfg.Watchlist.File = "data/watchlist.json"
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays after the US close.
		cfg.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradethrust.db"
	}
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Analysis.Preset == "" {
		cfg.Analysis.Preset = "default"
	}
	if cfg.Analysis.Workers == 0 {
		cfg.Analysis.Workers = 4
	}
	if cfg.Analysis.CacheTTLMin == 0 {
		cfg.Analysis.CacheTTLMin = 30
	}

	return cfg, nil
}

// Validate checks the fields the scanner cannot run without.
func (c *Config) Validate() error {
	if c.Data.HistoryDays < 50 {
		return fmt.Errorf("data.history_days must be at least 50, got %d", c.Data.HistoryDays)
	}
	if (c.Data.AlpacaKey == "") != (c.Data.AlpacaSecret == "") {
		return fmt.Errorf("alpaca key and secret must both be set or both be empty")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram bot_token and chat_id must both be set or both be empty")
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1, got %d", c.Analysis.Workers)
	}
	return nil
}

// EngineConfig resolves the analysis preset and applies the sizing
// overrides from the app config.
func (c *Config) EngineConfig() (engine.Config, error) {
	ec, err := engine.PresetConfig(c.Analysis.Preset)
	if err != nil {
		return engine.Config{}, err
	}
	if c.Analysis.PortfolioValue > 0 {
		ec.PortfolioValue = c.Analysis.PortfolioValue
	}
	if c.Analysis.RiskFraction > 0 {
		ec.RiskFraction = c.Analysis.RiskFraction
	}
	return ec, nil
}
