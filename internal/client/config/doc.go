// Package config loads runtime configuration for the ljpost CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed LJPOST_, plus an optional .env file in
//     the working directory (see parseEnv).
//  3. Optional JSON or YAML file selected with -c or -config (see parseFile).
//  4. Global command-line flags (see parseFlags), which override earlier
//     values.
//
// Supported flags
//
//	-e string           XML-RPC endpoint URL
//	-u string           LiveJournal username
//	-t duration         per-request timeout
//	-cache string       credential cache path
//	-log-level string   debug, info, warn or error
//	-log-format string  text, json or zap
//	-log-file string    rotated log file (zap only)
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "30s" or integer
// nanoseconds:
//
//	{
//	  "endpoint": "https://www.livejournal.com/interface/xmlrpc",
//	  "username": "alice",
//	  "request_timeout": "30s",
//	  "log_level": "info"
//	}
//
// The password can only come from LJPOST_PASSWORD, a prompt, or the
// credential cache.
package config
