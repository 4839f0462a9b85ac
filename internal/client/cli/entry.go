package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/client/models"
	"github.com/dmitrijs2005/ljpost/internal/client/services"
	"github.com/dmitrijs2005/ljpost/internal/common"
)

// stringList collects a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ", ") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type entryOptions struct {
	subject  string
	body     string
	bodyFile string
	tags     string
	props    stringList
	when     string
	id       int64
	private  bool
	strip    bool
	digest   bool
	remember bool
}

func (a *App) entryFlags(name string, o *entryOptions) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)

	fs.StringVar(&o.subject, "subject", "", "entry subject")
	fs.StringVar(&o.body, "body", "", "entry text")
	fs.StringVar(&o.bodyFile, "body-file", "", `read entry text from file ("-" for stdin)`)
	fs.StringVar(&o.tags, "tags", "", "comma separated tags")
	fs.Var(&o.props, "prop", "entry property name=value (repeatable)")
	fs.StringVar(&o.when, "time", "", "entry time, RFC3339 (default now)")
	fs.Int64Var(&o.id, "id", 0, "entry id to edit")
	fs.BoolVar(&o.private, "private", false, "visible to the author only")
	fs.BoolVar(&o.strip, "strip-newlines", false, "remove line breaks from the text")
	fs.BoolVar(&o.digest, "digest", false, "the password given is already an MD5 digest")
	fs.BoolVar(&o.remember, "remember", false, "cache the password digest after a successful save")
	return fs
}

func (a *App) entry(ctx context.Context, edit bool, args []string) int {
	name := "post"
	if edit {
		name = "edit"
	}

	var o entryOptions
	fs := a.entryFlags(name, &o)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitOK
		}
		return ExitUsage
	}

	switch {
	case edit && o.id <= 0:
		fmt.Fprintln(a.errOut, "edit needs -id")
		return ExitUsage
	case !edit && o.id != 0:
		fmt.Fprintln(a.errOut, "post does not take -id; use edit")
		return ExitUsage
	}

	draft, err := a.draft(o)
	if err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return ExitUsage
	}

	acc, err := a.resolveAccount(ctx, o.digest, o.remember)
	if err != nil {
		fmt.Fprintln(a.errOut, "Error:", err)
		return ExitError
	}

	receipt, err := a.publish.Publish(ctx, acc, draft)
	if err != nil {
		var f *services.Failure
		if errors.As(err, &f) {
			fmt.Fprintln(a.errOut, f.Error())
		} else {
			fmt.Fprintln(a.errOut, "Error:", err)
		}
		a.dropRejected(ctx, acc, err)
		return ExitError
	}

	fmt.Fprintf(a.out, "id: %d\nurl: %s\nanum: %d\n", receipt.ItemID, receipt.URL, receipt.Anum)
	return ExitOK
}

func (a *App) draft(o entryOptions) (services.Draft, error) {
	d := services.Draft{
		Subject:       o.subject,
		Tags:          common.SplitList(o.tags),
		Private:       o.private,
		StripNewlines: o.strip,
		ItemID:        o.id,
	}

	props, err := models.PropsFromStrings(o.props)
	if err != nil {
		return d, err
	}
	d.Props = props

	if o.when != "" {
		t, err := time.Parse(time.RFC3339, o.when)
		if err != nil {
			return d, fmt.Errorf("-time: %w", err)
		}
		d.Time = t
	}

	d.Body, err = a.readBody(o)
	return d, err
}

func (a *App) readBody(o entryOptions) (string, error) {
	switch {
	case o.bodyFile == "-":
		b, err := io.ReadAll(a.in)
		return string(b), err
	case o.bodyFile != "":
		b, err := os.ReadFile(o.bodyFile)
		return string(b), err
	case o.body != "":
		return o.body, nil
	case isTerminal(a.stdinFd):
		return GetMultiline(a.in, "Entry text", a.errOut)
	default:
		b, err := io.ReadAll(a.in)
		return string(b), err
	}
}
