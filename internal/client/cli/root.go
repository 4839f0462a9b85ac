package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/ljpost/internal/buildinfo"
	"github.com/dmitrijs2005/ljpost/internal/client/config"
	"github.com/dmitrijs2005/ljpost/internal/flagx"
)

// Exit codes returned by Run.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

const usageText = `Usage: ljpost [global flags] <command> [command flags]

Commands:
  post      publish a new entry
  edit      edit an existing entry (-id required)
  forget    drop remembered credentials
  version   print build information

Global flags:
  -c, -config file   JSON or YAML config file
  -e url             XML-RPC endpoint
  -u name            LiveJournal username
  -t duration        per-request timeout
  -cache path        credential cache
  -log-level, -log-format, -log-file

Run 'ljpost <command> -h' for command flags.
`

// Run executes one command. args are the process arguments without the
// program name; global flags are skipped since config already consumed them.
func (a *App) Run(ctx context.Context, args []string) int {
	rest := flagx.StripArgs(args, config.GlobalFlags)
	if len(rest) == 0 {
		fmt.Fprint(a.errOut, usageText)
		return ExitUsage
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "post":
		return a.entry(ctx, false, cmdArgs)
	case "edit":
		return a.entry(ctx, true, cmdArgs)
	case "forget":
		return a.forget(ctx, cmdArgs)
	case "version":
		buildinfo.PrintBuildData(a.out)
		return ExitOK
	case "help", "-h", "-help", "--help":
		fmt.Fprint(a.out, usageText)
		return ExitOK
	default:
		fmt.Fprintf(a.errOut, "unknown command %q\n\n%s", cmd, usageText)
		return ExitUsage
	}
}
