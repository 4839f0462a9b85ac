package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/ljpost/internal/client/client"
	"github.com/dmitrijs2005/ljpost/internal/client/config"
	"github.com/dmitrijs2005/ljpost/internal/client/services"
	"github.com/dmitrijs2005/ljpost/internal/filex"
	"github.com/dmitrijs2005/ljpost/internal/logging"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	creds   services.CredentialService
	publish services.PublishService

	in      *bufio.Reader
	stdinFd int
	out     io.Writer
	errOut  io.Writer
}

// NewApp wires logging, the XML-RPC client and the credential cache from c.
// A cache that cannot be opened is logged and left out; posting still works
// with a prompted password.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log, err := logging.New(logging.Options{
		Format: c.LogFormat,
		Level:  c.LogLevel,
		File:   c.LogFile,
	})
	if err != nil {
		return nil, err
	}

	a := &App{
		config:  c,
		log:     log,
		in:      bufio.NewReader(os.Stdin),
		stdinFd: int(os.Stdin.Fd()),
		out:     os.Stdout,
		errOut:  os.Stderr,
	}

	db, err := openCache(ctx, c.CacheDSN)
	if err != nil {
		log.Warn(ctx, "credential cache unavailable", "dsn", c.CacheDSN, "error", err)
	} else {
		a.db = db
		a.creds = services.NewCredentialService(db)
	}

	apiClient := client.NewXMLRPCClient(c.Endpoint,
		client.WithTimeout(c.RequestTimeout),
		client.WithUserAgent(c.UserAgent),
		client.WithLogger(log),
	)
	a.publish = services.NewPublishService(apiClient, a.creds, log)

	return a, nil
}

func openCache(ctx context.Context, dsn string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}
	return client.InitDatabase(ctx, dsn)
}

// Close releases the cache and flushes buffered logs.
func (a *App) Close() error {
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
