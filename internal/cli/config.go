package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	qerrors "github.com/matzehuels/qroute/pkg/errors"
)

// Config is the optional config file:
//
//	log_level = "debug"
//	workers = 4
//	trace = false
//	device_files = ["~/devices/lab5.toml"]
//
//	[cache]
//	backend = "redis"   # file (default), redis, mongo or none
//	ttl = "720h"
//	prefix = "lab-a:"
//
//	[cache.redis]
//	addr = "localhost:6379"
type Config struct {
	LogLevel    string      `toml:"log_level"`
	Workers     int         `toml:"workers"`
	Trace       bool        `toml:"trace"`
	DeviceFiles []string    `toml:"device_files"`
	Cache       CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the table cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"`
	TTL     string `toml:"ttl"`
	Dir     string `toml:"dir"`
	Prefix  string `toml:"prefix"`

	Redis struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       int    `toml:"db"`
	} `toml:"redis"`

	Mongo struct {
		URI        string `toml:"uri"`
		Database   string `toml:"database"`
		Collection string `toml:"collection"`
	} `toml:"mongo"`
}

// tableTTL parses the cache TTL, defaulting to defaultTableTTL.
func (c *Config) tableTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return defaultTableTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0, qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "cache ttl %q", c.Cache.TTL)
	}
	return d, nil
}

// loadConfig reads the config file at path. With an empty path the default
// location is tried and a missing file yields the defaults.
func loadConfig(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = configPath(); err != nil {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return &Config{}, nil
	}
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "read config")
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, qerrors.Wrap(qerrors.ErrCodeConfiguration, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, qerrors.Configuration("config %s: unknown key %s", path, undecoded[0])
	}
	return &cfg, nil
}

// configPath returns the config file location using XDG standard
// (~/.config/qroute/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
