package flagx

import (
	"flag"
	"strings"
)

// ConfigFlags are the flags that select a config file.
var ConfigFlags = []string{"-c", "-config"}

// FilterArgs returns the arguments that belong to allowedFlags, together with
// their values.
//
// Supported formats:
//  1. Flag and value as separate arguments:  -c conf.json
//  2. Flag and value combined with '=':      -config=conf.json
//
// A flag is assumed to take a value when the next argument does not start
// with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	kept, _ := splitArgs(args, allowedFlags)
	return kept
}

// StripArgs is the complement of FilterArgs: it returns everything except the
// allowed flags and their values, in the original order.
func StripArgs(args []string, allowedFlags []string) []string {
	_, rest := splitArgs(args, allowedFlags)
	return rest
}

func splitArgs(args []string, allowedFlags []string) (kept, rest []string) {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	kept = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := allowed[name]; ok {
				kept = append(kept, arg)
			} else {
				rest = append(rest, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			rest = append(rest, arg)
			continue
		}

		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			kept = append(kept, args[i+1])
			i++
		}
	}

	return kept, rest
}

// ConfigFile extracts the config file path given with -c or -config. Other
// arguments are ignored. It returns "" when neither flag is present.
func ConfigFile(args []string) string {
	var config string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return config
}
