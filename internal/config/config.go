package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL        string `yaml:"base_url"`
		APIKey         string `yaml:"api_key"`
		RequestsPerSec int    `yaml:"requests_per_sec"`
	} `yaml:"provider"`
	Scan struct {
		ScoreThreshold float64 `yaml:"score_threshold"`
		MinDollarVol   float64 `yaml:"min_dollar_vol"`
		MaxTickers     int     `yaml:"max_tickers"`
		WindowDays     int     `yaml:"window_days"`
		MinHistory     int     `yaml:"min_history"`
	} `yaml:"scan"`
	News struct {
		MaxArticles int `yaml:"max_articles"`
	} `yaml:"news"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Schedule struct {
		ScanCron    string `yaml:"scan_cron"`
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
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
	if v := os.Getenv("POLYGON_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("POLYGON_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCORE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scan.ScoreThreshold = f
		}
	}

	// Defaults
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://api.polygon.io"
	}
	if cfg.Provider.RequestsPerSec == 0 {
		cfg.Provider.RequestsPerSec = 5
	}
	if cfg.Scan.ScoreThreshold == 0 {
		cfg.Scan.ScoreThreshold = 75
	}
	if cfg.Scan.MinDollarVol == 0 {
		cfg.Scan.MinDollarVol = 5_000_000
	}
	if cfg.Scan.MaxTickers == 0 {
		cfg.Scan.MaxTickers = 200
	}
	if cfg.Scan.WindowDays == 0 {
		cfg.Scan.WindowDays = 260
	}
	if cfg.Scan.MinHistory == 0 {
		cfg.Scan.MinHistory = 60
	}
	if cfg.News.MaxArticles == 0 {
		cfg.News.MaxArticles = 50
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/swingscout.db"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 30 21 * * 1-5"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 22 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	if c.Scan.ScoreThreshold < 0 || c.Scan.ScoreThreshold > 100 {
		return fmt.Errorf("scan.score_threshold must be between 0 and 100")
	}
	if c.Scan.MinHistory < 2 {
		return fmt.Errorf("scan.min_history must be at least 2")
	}
	return nil
}

// TelegramEnabled reports whether alerting credentials are present. Alerts
// are optional; the API and CLI work without them.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
