// Package services contains application services for the ljpost CLI.
// This file defines the credential cache: remembering a username with its
// password digest so later invocations need no password prompt.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/ljpost/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/ljpost/internal/common"
	"github.com/dmitrijs2005/ljpost/internal/cryptox"
	"github.com/dmitrijs2005/ljpost/internal/dbx"
)

const (
	userKeyPrefix  = "user/"
	defaultUserKey = "default_user"
)

// ErrNoCredentials is returned by Lookup when nothing is remembered for the
// requested account.
var ErrNoCredentials = fmt.Errorf("no remembered credentials: %w", common.ErrorNotFound)

// CredentialService keeps password digests in the local cache. The raw
// password is never stored.
//
// Contract:
//   - Remember: store username and digest and make username the default.
//   - Lookup: return the digest for username, or for the default account
//     when username is empty.
//   - Forget: drop one account, or every account when username is empty.
//   - Users: list remembered usernames in order.
type CredentialService interface {
	Remember(ctx context.Context, username, digest string) error
	Lookup(ctx context.Context, username string) (user, digest string, err error)
	Forget(ctx context.Context, username string) error
	Users(ctx context.Context) ([]string, error)
}

type credentialService struct {
	db *sql.DB
}

func NewCredentialService(db *sql.DB) CredentialService {
	return &credentialService{db: db}
}

func (s *credentialService) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *credentialService) Remember(ctx context.Context, username, digest string) error {
	if username == "" {
		return fmt.Errorf("%w: empty username", common.ErrorValidation)
	}
	if !cryptox.IsDigest(digest) {
		return fmt.Errorf("%w: not a password digest", common.ErrorValidation)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Set(ctx, userKeyPrefix+username, []byte(digest)); err != nil {
			return err
		}
		return r.Set(ctx, defaultUserKey, []byte(username))
	})
}

func (s *credentialService) Lookup(ctx context.Context, username string) (string, string, error) {
	r := s.repo(s.db)

	if username == "" {
		v, err := r.Get(ctx, defaultUserKey)
		if err != nil {
			return "", "", notFound(err)
		}
		username = string(v)
	}

	digest, err := r.Get(ctx, userKeyPrefix+username)
	if err != nil {
		return "", "", notFound(err)
	}
	return username, string(digest), nil
}

func (s *credentialService) Forget(ctx context.Context, username string) error {
	if username == "" {
		return s.repo(s.db).Clear(ctx)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		if err := r.Delete(ctx, userKeyPrefix+username); err != nil {
			return err
		}

		def, err := r.Get(ctx, defaultUserKey)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return nil
		case err != nil:
			return err
		case string(def) == username:
			return r.Delete(ctx, defaultUserKey)
		}
		return nil
	})
}

func (s *credentialService) Users(ctx context.Context) ([]string, error) {
	m, err := s.repo(s.db).List(ctx, userKeyPrefix)
	if err != nil {
		return nil, err
	}

	users := make([]string, 0, len(m))
	for k := range m {
		users = append(users, strings.TrimPrefix(k, userKeyPrefix))
	}
	sort.Strings(users)
	return users, nil
}

func notFound(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return ErrNoCredentials
	}
	return err
}
