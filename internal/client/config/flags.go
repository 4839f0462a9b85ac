package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/ljpost/internal/flagx"
)

// GlobalFlags lists every flag this package consumes, including the config
// file flags. Callers strip them with flagx.StripArgs before looking for a
// command.
var GlobalFlags = append([]string{
	"-e", "-u", "-t",
	"-cache", "-log-level", "-log-format", "-log-file",
}, flagx.ConfigFlags...)

// parseFlags overlays cfg with the global flags found in args.
//
//	-e string           XML-RPC endpoint URL
//	-u string           LiveJournal username
//	-t duration         per-request timeout, e.g. 30s
//	-cache string       credential cache path
//	-log-level string   debug, info, warn or error
//	-log-format string  text, json or zap
//	-log-file string    rotated log file (zap only)
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("global", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Endpoint, "e", cfg.Endpoint, "XML-RPC endpoint URL")
	fs.StringVar(&cfg.Username, "u", cfg.Username, "LiveJournal username")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.CacheDSN, "cache", cfg.CacheDSN, "credential cache path")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file")
	var ignored string
	fs.StringVar(&ignored, "c", "", "config file")
	fs.StringVar(&ignored, "config", "", "config file")

	return fs.Parse(flagx.FilterArgs(args, GlobalFlags))
}
