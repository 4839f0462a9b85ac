package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/common"
	"github.com/joho/godotenv"
)

// dotenvFile is loaded from the working directory when present. Variables
// already set in the process environment win.
var dotenvFile = ".env"

// parseEnv overlays cfg with LJPOST_* variables.
//
//	LJPOST_ENDPOINT    LJPOST_USERNAME   LJPOST_PASSWORD
//	LJPOST_TIMEOUT     LJPOST_USER_AGENT LJPOST_CACHE
//	LJPOST_LOG_LEVEL   LJPOST_LOG_FORMAT LJPOST_LOG_FILE
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	strs := map[string]*string{
		"ENDPOINT":   &cfg.Endpoint,
		"USERNAME":   &cfg.Username,
		"PASSWORD":   &cfg.Password,
		"USER_AGENT": &cfg.UserAgent,
		"CACHE":      &cfg.CacheDSN,
		"LOG_LEVEL":  &cfg.LogLevel,
		"LOG_FORMAT": &cfg.LogFormat,
		"LOG_FILE":   &cfg.LogFile,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(common.EnvPrefix + name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv(common.EnvPrefix + "TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", common.EnvPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
