package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ljpost/internal/client/client"
	"github.com/dmitrijs2005/ljpost/internal/client/services"
	"github.com/dmitrijs2005/ljpost/internal/common"
	"github.com/dmitrijs2005/ljpost/internal/cryptox"
)

// resolveAccount picks credentials in this order: LJPOST_PASSWORD, the
// credential cache, a terminal prompt. A prompted password is digested
// at once and the typed bytes are wiped.
func (a *App) resolveAccount(ctx context.Context, isDigest, remember bool) (services.Account, error) {
	user := a.config.Username

	if a.config.Password != "" {
		if user == "" {
			return services.Account{}, errors.New("LJPOST_PASSWORD is set but no username given")
		}
		return services.Account{Username: user, Password: a.config.Password, IsDigest: isDigest, Remember: remember}, nil
	}

	if a.creds != nil {
		u, digest, err := a.creds.Lookup(ctx, user)
		switch {
		case err == nil:
			a.log.Debug(ctx, "using remembered credentials", "user", u)
			return services.Account{Username: u, Password: digest, IsDigest: true, Remember: remember, Cached: true}, nil
		case !errors.Is(err, services.ErrNoCredentials):
			a.log.Warn(ctx, "credential lookup failed", "error", err)
		}
	}

	if user == "" {
		u, err := GetSimpleText(a.in, "LiveJournal username", a.errOut)
		if err != nil {
			return services.Account{}, fmt.Errorf("read username: %w", err)
		}
		if u == "" {
			return services.Account{}, errors.New("username is required")
		}
		user = u
	}

	pw, err := GetPassword(a.errOut, user)
	if err != nil {
		return services.Account{}, fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)

	if isDigest {
		return services.Account{Username: user, Password: string(pw), IsDigest: true, Remember: remember}, nil
	}
	return services.Account{
		Username: user,
		Password: cryptox.PasswordDigest(pw),
		IsDigest: true,
		Remember: remember,
	}, nil
}

// dropRejected forgets a cached digest the server refused as bad
// credentials, so the next run prompts again.
func (a *App) dropRejected(ctx context.Context, acc services.Account, err error) {
	var f *client.Fault
	if !acc.Cached || a.creds == nil || !errors.As(err, &f) || !f.Unauthorized() {
		return
	}
	if ferr := a.creds.Forget(ctx, acc.Username); ferr != nil {
		a.log.Warn(ctx, "could not forget rejected credentials", "user", acc.Username, "error", ferr)
		return
	}
	fmt.Fprintf(a.errOut, "remembered credentials for %s were rejected and have been forgotten\n", acc.Username)
}
