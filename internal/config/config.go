package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Mode    string `yaml:"mode"` // polling | webhook (future)
	Workers int    `yaml:"workers"`
	AdminID int64  `yaml:"admin_id"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SessionsConfig struct {
	Backend string        `yaml:"backend"` // memory | redis
	TTL     time.Duration `yaml:"ttl"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type OpsConfig struct {
	Port int `yaml:"port"` // serves /healthz and /metrics
}

type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Sessions SessionsConfig `yaml:"sessions"`
	Export   ExportConfig   `yaml:"export"`
	Ops      OpsConfig      `yaml:"ops"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Bot.Mode == "" {
		cfg.Bot.Mode = "polling"
	}
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = "memory"
	}
	if cfg.Sessions.TTL <= 0 {
		cfg.Sessions.TTL = 15 * time.Minute
	}
	if cfg.Export.Path == "" {
		cfg.Export.Path = "exported_data.xlsx"
	}
	if cfg.Ops.Port == 0 {
		cfg.Ops.Port = 8080
	}

	// Minimal validation. Dev mode may run without a token: the process then
	// uses the logging bot adapter and never reaches Telegram.
	if cfg.Bot.Token == "" && !dev {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Bot.AdminID == 0 {
		return nil, errors.New("bot.admin_id is required")
	}
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Sessions.Backend != "memory" && cfg.Sessions.Backend != "redis" {
		return nil, fmt.Errorf("sessions.backend must be memory or redis, got %q", cfg.Sessions.Backend)
	}
	if cfg.Sessions.Backend == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when sessions.backend is redis")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
