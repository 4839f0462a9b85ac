package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/ljpost/internal/client/services"
)

func (a *App) forget(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("forget", flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	all := fs.Bool("all", false, "forget every remembered account")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	if a.creds == nil {
		fmt.Fprintln(a.errOut, "Error: credential cache unavailable")
		return ExitError
	}

	if *all {
		if err := a.creds.Forget(ctx, ""); err != nil {
			fmt.Fprintln(a.errOut, "Error:", err)
			return ExitError
		}
		fmt.Fprintln(a.out, "forgot all accounts")
		return ExitOK
	}

	user, _, err := a.creds.Lookup(ctx, a.config.Username)
	if errors.Is(err, services.ErrNoCredentials) {
		fmt.Fprintln(a.out, "nothing to forget")
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return ExitError
	}

	if err := a.creds.Forget(ctx, user); err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return ExitError
	}
	fmt.Fprintf(a.out, "forgot %s\n", user)
	return ExitOK
}
