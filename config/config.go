package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the runtime settings. Zero values are replaced by defaults.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RedisConfig selects the session store. An empty Addr keeps sessions in memory.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionConfig controls how long query results are kept and how they are paged
type SessionConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	PageSize int           `yaml:"page_size"`
}

// LogConfig selects the logger mode
type LogConfig struct {
	Mode string `yaml:"mode"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server:  ServerConfig{Addr: ":8080"},
		Redis:   RedisConfig{DB: 8},
		Session: SessionConfig{TTL: 30 * time.Minute, PageSize: 20},
		Log:     LogConfig{Mode: "development"},
	}
}

// Load reads the YAML file at path (skipped when path is empty) on top of
// the defaults, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get("AIDMATCH_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := get("AIDMATCH_REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := get("AIDMATCH_REDIS_PASSWORD"); ok {
		cfg.Redis.Password = v
	}
	if v, ok := get("AIDMATCH_REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AIDMATCH_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if v, ok := get("AIDMATCH_SESSION_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AIDMATCH_SESSION_TTL: %w", err)
		}
		cfg.Session.TTL = ttl
	}
	if v, ok := get("AIDMATCH_PAGE_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AIDMATCH_PAGE_SIZE: %w", err)
		}
		cfg.Session.PageSize = n
	}
	if v, ok := get("LOG_MODE"); ok {
		cfg.Log.Mode = v
	}
	return nil
}

// Validate reports every invalid setting at once
func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, errors.New("redis.db must not be negative"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if c.Session.PageSize <= 0 {
		errs = append(errs, errors.New("session.page_size must be positive"))
	}
	return errors.Join(errs...)
}
