package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/ljpost/internal/flagx"
	"github.com/dmitrijs2005/ljpost/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used only for decoding config files. Empty fields leave
// the current value alone.
type FileConfig struct {
	Endpoint       string          `json:"endpoint" yaml:"endpoint"`
	Username       string          `json:"username" yaml:"username"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	UserAgent      string          `json:"user_agent" yaml:"user_agent"`
	CacheDSN       string          `json:"cache" yaml:"cache"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	LogFormat      string          `json:"log_format" yaml:"log_format"`
	LogFile        string          `json:"log_file" yaml:"log_file"`
}

// parseFile overlays cfg with the file given by -c or -config. Files ending
// in .yaml or .yml are decoded as YAML, anything else as JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Endpoint, fc.Endpoint)
	set(&cfg.Username, fc.Username)
	set(&cfg.UserAgent, fc.UserAgent)
	set(&cfg.CacheDSN, fc.CacheDSN)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogFormat, fc.LogFormat)
	set(&cfg.LogFile, fc.LogFile)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
