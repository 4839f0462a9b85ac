package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/common"
)

// Config holds runtime settings for the ljpost CLI.
//
// Password is only ever taken from the environment; it is never read from a
// config file or a flag.
type Config struct {
	Endpoint       string
	Username       string
	Password       string
	RequestTimeout time.Duration
	UserAgent      string
	CacheDSN       string
	LogLevel       string
	LogFormat      string
	LogFile        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Endpoint = common.DefaultEndpoint
	c.RequestTimeout = common.DefaultRequestTimeout
	c.UserAgent = common.DefaultUserAgent
	c.CacheDSN = defaultCacheDSN()
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

func defaultCacheDSN() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "ljpost.db"
	}
	return filepath.Join(dir, "ljpost", "ljpost.db")
}

// LoadConfig builds a Config from defaults, then the environment (including
// an optional .env file), then the config file named by -c/-config, then the
// global flags in args. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
