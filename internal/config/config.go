package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Store backends accepted in Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the runtime configuration of the server and CLI.
type Config struct {
	Addr      string       `yaml:"addr"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
	Store     string       `yaml:"store"`
	Redis     RedisConfig  `yaml:"redis"`
	SQLite    SQLiteConfig `yaml:"sqlite"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "console",
		Store:     StoreMemory,
		Redis:     RedisConfig{Addr: "localhost:6379", TTL: 24 * time.Hour},
		SQLite:    SQLiteConfig{Path: "./data/tictactoe.db"},
	}
}

// Load layers defaults, the optional YAML file at path, a .env file in the
// working directory and finally TTT_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	setString(&c.Addr, "TTT_ADDR")
	setString(&c.LogLevel, "TTT_LOG_LEVEL")
	setString(&c.LogFormat, "TTT_LOG_FORMAT")
	setString(&c.Store, "TTT_STORE")
	setString(&c.Redis.Addr, "TTT_REDIS_ADDR")
	setString(&c.Redis.Password, "TTT_REDIS_PASSWORD")
	setString(&c.SQLite.Path, "TTT_SQLITE_PATH")
	if v := os.Getenv("TTT_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TTT_REDIS_DB: %w", err)
		}
		c.Redis.DB = n
	}
	if v := os.Getenv("TTT_REDIS_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TTT_REDIS_TTL: %w", err)
		}
		c.Redis.TTL = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.Redis.TTL < 0 {
		return errors.New("redis ttl must not be negative")
	}
	return nil
}
