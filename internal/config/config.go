package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Log      LogConfig      `yaml:"log"`
	Priority PriorityConfig `yaml:"priority"`
	Watcher  WatcherConfig  `yaml:"watcher"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// PriorityConfig holds scoring exceptions for the priority engine.
type PriorityConfig struct {
	// ToolingSlug is a project slug that receives a fixed scoring bonus.
	ToolingSlug string `yaml:"tooling_slug"`
}

// WatcherConfig controls the TODO watcher poll cycle.
type WatcherConfig struct {
	Interval     time.Duration `yaml:"interval"`
	CycleTimeout time.Duration `yaml:"cycle_timeout"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 5402,
		},
		DB: DBConfig{
			Path: "ryan.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Priority: PriorityConfig{
			ToolingSlug: "kodiack-dashboard-5500",
		},
		Watcher: WatcherConfig{
			Interval:     5 * time.Minute,
			CycleTimeout: 2 * time.Minute,
		},
	}

	if path := os.Getenv("RYAN_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("RYAN_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("RYAN_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RYAN_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("RYAN_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("RYAN_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if logPath := os.Getenv("RYAN_LOG_PATH"); logPath != "" {
		cfg.Log.Path = logPath
	}
	if slug := os.Getenv("RYAN_TOOLING_SLUG"); slug != "" {
		cfg.Priority.ToolingSlug = slug
	}
	if intervalStr := os.Getenv("RYAN_WATCH_INTERVAL"); intervalStr != "" {
		interval, err := time.ParseDuration(intervalStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RYAN_WATCH_INTERVAL: %w", err)
		}
		cfg.Watcher.Interval = interval
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
