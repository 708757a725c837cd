// Package config loads the optional bestfirst configuration file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Version is the only configuration file version understood.
const Version = 1

// ErrUnsupportedVersion is returned for a file whose version is not Version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Version  int    `yaml:"version" json:"version"`
	LogLevel string `yaml:"log_level" json:"log_level"`
	Solve    struct {
		Domain  string `yaml:"domain" json:"domain"`
		Workers int    `yaml:"workers" json:"workers"`
	} `yaml:"solve" json:"solve"`
	Cache struct {
		Backend  string `yaml:"backend" json:"backend"`
		Addr     string `yaml:"addr" json:"addr"`
		Password string `yaml:"password" json:"password"`
		DB       int    `yaml:"db" json:"db"`
		Prefix   string `yaml:"prefix" json:"prefix"`
		TTL      string `yaml:"ttl" json:"ttl"`
	} `yaml:"cache" json:"cache"`
	Serve struct {
		Addr string `yaml:"addr" json:"addr"`
	} `yaml:"serve" json:"serve"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Version: Version}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Solve.Domain == "" {
		c.Solve.Domain = "anima"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheNone
	}
	if c.Cache.Addr == "" {
		c.Cache.Addr = "localhost:6379"
	}
	if c.Cache.Prefix == "" {
		c.Cache.Prefix = "bestfirst:solution:"
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = ":8080"
	}
}

// CacheTTL returns the parsed cache TTL, 0 meaning no expiration.
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return 0, nil
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl: %w", err)
	}
	return ttl, nil
}

func (c *Config) validate() error {
	if c.Version != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Solve.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Solve.Workers)
	}
	_, err := c.CacheTTL()
	return err
}

// Load reads a configuration file (YAML, or JSON by extension). An empty
// path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}
