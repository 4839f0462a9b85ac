package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/client/config"
	"github.com/dmitrijs2005/ljpost/internal/client/ljtest"
	"github.com/dmitrijs2005/ljpost/internal/client/services"
	"github.com/dmitrijs2005/ljpost/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	*App
	srv    *ljtest.Server
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

// newTestApp builds an App against a fake endpoint that accepts every post.
// stdin feeds the app's input reader.
func newTestApp(t *testing.T, cfg config.Config, stdin string) *testApp {
	t.Helper()

	srv := ljtest.NewServer()
	t.Cleanup(srv.Close)
	srv.Handle(ljtest.GetChallenge, ljtest.Static(ljtest.Challenge("c0:1:2:60:tok:sig")))
	srv.Handle(ljtest.PostEvent, ljtest.Static(ljtest.Event(100, "http://x/100.html", 7)))
	srv.Handle(ljtest.EditEvent, ljtest.Static(ljtest.Event(42, "http://x/42.html", 3)))

	cfg.Endpoint = srv.Endpoint()
	cfg.RequestTimeout = 5 * time.Second
	cfg.LogLevel = "error"
	if cfg.CacheDSN == "" {
		cfg.CacheDSN = filepath.Join(t.TempDir(), "cache", "ljpost.db")
	}

	app, err := NewApp(context.Background(), &cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	oldTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = oldTerm })

	ta := &testApp{App: app, srv: srv, out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	app.in = rdr(stdin)
	app.out = ta.out
	app.errOut = ta.errOut
	return ta
}

func stubPassword(t *testing.T, pw string) *int {
	t.Helper()
	calls := 0
	old := readPassword
	readPassword = func(int) ([]byte, error) {
		calls++
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = old })
	return &calls
}

func TestRun_Usage(t *testing.T) {
	a := newTestApp(t, config.Config{}, "")

	assert.Equal(t, ExitUsage, a.Run(context.Background(), nil))
	assert.Contains(t, a.errOut.String(), "Usage: ljpost")

	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"-u", "alice", "publish"}))
	assert.Contains(t, a.errOut.String(), `unknown command "publish"`)

	assert.Equal(t, ExitOK, a.Run(context.Background(), []string{"help"}))
	assert.Contains(t, a.out.String(), "Commands:")
}

func TestRun_Version(t *testing.T) {
	a := newTestApp(t, config.Config{}, "")

	assert.Equal(t, ExitOK, a.Run(context.Background(), []string{"version"}))
	assert.Contains(t, a.out.String(), "Build version:")
}

func TestRun_PostWithEnvPassword(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")

	code := a.Run(context.Background(), []string{
		"-u", "alice", "post",
		"-subject", "Hi", "-body", "line1\nline2", "-strip-newlines",
		"-tags", "a, b", "-prop", "current_mood=happy", "-prop", "opt_nocomments=true",
		"-private", "-time", "2024-03-09T17:05:00Z",
	})
	require.Equal(t, ExitOK, code, a.errOut.String())
	assert.Equal(t, "id: 100\nurl: http://x/100.html\nanum: 7\n", a.out.String())

	calls := a.srv.Calls()
	require.Len(t, calls, 2)
	p := calls[1].Params
	assert.Equal(t, ljtest.PostEvent, calls[1].Method)
	assert.Equal(t, "alice", p["username"])
	assert.Equal(t, "Hi", p["subject"])
	assert.Equal(t, "line1line2", p["event"])
	assert.Equal(t, "private", p["security"])
	assert.Equal(t,
		cryptox.ChallengeResponse("c0:1:2:60:tok:sig", cryptox.PasswordDigest([]byte("password"))),
		p["auth_response"])
	assert.Equal(t, map[string]any{
		"taglist":        "a,b",
		"current_mood":   "happy",
		"opt_nocomments": true,
	}, p["props"])
}

func TestRun_EditRequiresID(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")

	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"edit", "-body", "x"}))
	assert.Contains(t, a.errOut.String(), "edit needs -id")
	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"post", "-id", "4", "-body", "x"}))
	assert.Empty(t, a.srv.Calls())
}

func TestRun_Edit(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")

	code := a.Run(context.Background(), []string{"edit", "-id", "42", "-body", "fixed"})
	require.Equal(t, ExitOK, code, a.errOut.String())
	assert.Equal(t, 1, a.srv.CallCount(ljtest.EditEvent))
	assert.Equal(t, 0, a.srv.CallCount(ljtest.PostEvent))
	assert.Contains(t, a.out.String(), "id: 42")
}

func TestRun_BodyFromStdinAndFile(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "from stdin")

	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"post", "-body-file", "-"}))
	assert.Equal(t, "from stdin", a.srv.Calls()[1].Params["event"])

	path := filepath.Join(t.TempDir(), "entry.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>from file</p>"), 0o600))
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"post", "-body-file", path}))
	assert.Equal(t, "<p>from file</p>", a.srv.Calls()[3].Params["event"])
}

func TestRun_BadPropIsUsageError(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")

	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"post", "-body", "x", "-prop", "opt_nocomments=maybe"}))
	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"post", "-body", "x", "-prop", "no_such_prop=1"}))
	assert.Equal(t, ExitUsage, a.Run(context.Background(), []string{"post", "-body", "x", "-time", "yesterday"}))
	assert.Empty(t, a.srv.Calls())
}

func TestRun_FaultIsReported(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "wrong"}, "")
	a.srv.Handle(ljtest.GetChallenge, ljtest.Static(ljtest.Fault(101, "Invalid password")))

	assert.Equal(t, ExitError, a.Run(context.Background(), []string{"post", "-body", "x"}))
	assert.Equal(t, "Error (code 101): Invalid password\n", a.errOut.String())
	assert.Equal(t, 0, a.srv.CallCount(ljtest.PostEvent))
}

func TestRun_PromptRememberAndForget(t *testing.T) {
	cache := filepath.Join(t.TempDir(), "ljpost.db")
	calls := stubPassword(t, "password")

	a := newTestApp(t, config.Config{CacheDSN: cache}, "alice\n")
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"post", "-body", "x", "-remember"}), a.errOut.String())
	assert.Equal(t, 1, *calls)
	assert.Contains(t, a.errOut.String(), "LiveJournal username")
	require.NoError(t, a.Close())

	b := newTestApp(t, config.Config{CacheDSN: cache}, "")
	require.Equal(t, ExitOK, b.Run(context.Background(), []string{"post", "-body", "y"}), b.errOut.String())
	assert.Equal(t, 1, *calls, "remembered digest is used without a prompt")
	assert.Equal(t, "alice", b.srv.Calls()[1].Params["username"])

	require.Equal(t, ExitOK, b.Run(context.Background(), []string{"forget"}))
	assert.Contains(t, b.out.String(), "forgot alice")

	b.out.Reset()
	require.Equal(t, ExitOK, b.Run(context.Background(), []string{"forget"}))
	assert.Contains(t, b.out.String(), "nothing to forget")
}

func TestRun_RejectedCachedDigestIsForgotten(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")
	ctx := context.Background()
	require.Equal(t, ExitOK, a.Run(ctx, []string{"post", "-body", "x", "-remember"}), a.errOut.String())

	a.config.Password = ""
	a.srv.Handle(ljtest.GetChallenge, ljtest.Static(ljtest.Fault(101, "Invalid password")))

	require.Equal(t, ExitError, a.Run(ctx, []string{"post", "-body", "y"}))
	assert.Contains(t, a.errOut.String(), "Error (code 101): Invalid password")
	assert.Contains(t, a.errOut.String(), "rejected and have been forgotten")

	_, _, err := a.creds.Lookup(ctx, "alice")
	require.ErrorIs(t, err, services.ErrNoCredentials)
}

func TestRun_RejectedEnvPasswordKeepsCache(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")
	ctx := context.Background()
	require.Equal(t, ExitOK, a.Run(ctx, []string{"post", "-body", "x", "-remember"}), a.errOut.String())

	a.srv.Handle(ljtest.GetChallenge, ljtest.Static(ljtest.Fault(101, "Invalid password")))
	require.Equal(t, ExitError, a.Run(ctx, []string{"post", "-body", "y"}))
	assert.NotContains(t, a.errOut.String(), "forgotten")

	_, _, err := a.creds.Lookup(ctx, "alice")
	require.NoError(t, err)
}

func TestRun_ForgetAll(t *testing.T) {
	a := newTestApp(t, config.Config{Username: "alice", Password: "password"}, "")
	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"post", "-body", "x", "-remember"}))

	require.Equal(t, ExitOK, a.Run(context.Background(), []string{"forget", "-all"}))
	users, err := a.creds.Users(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestResolveAccount_PasswordWithoutUser(t *testing.T) {
	a := newTestApp(t, config.Config{Password: "password"}, "")

	_, err := a.resolveAccount(context.Background(), false, false)
	require.ErrorContains(t, err, "no username")
}

func TestResolveAccount_PromptedDigest(t *testing.T) {
	stubPassword(t, "5f4dcc3b5aa765d61d8327deb882cf99")
	a := newTestApp(t, config.Config{Username: "alice"}, "")

	acc, err := a.resolveAccount(context.Background(), true, false)
	require.NoError(t, err)
	assert.True(t, acc.IsDigest)
	assert.Equal(t, "5f4dcc3b5aa765d61d8327deb882cf99", acc.Password)
}
