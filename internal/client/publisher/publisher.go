package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/client/client"
	"github.com/dmitrijs2005/ljpost/internal/client/models"
	"github.com/dmitrijs2005/ljpost/internal/common"
	"github.com/dmitrijs2005/ljpost/internal/cryptox"
	"github.com/dmitrijs2005/ljpost/internal/logging"
	"github.com/google/uuid"
)

var (
	// ErrChallenge wraps any failure of the getchallenge stage.
	ErrChallenge = errors.New("challenge failed")
	// ErrIncompleteReply is returned when a success-shaped reply lacks
	// itemid, url or anum.
	ErrIncompleteReply = errors.New("reply lacks itemid, url or anum")
)

// Receipt is what a successful Save returns.
type Receipt struct {
	ItemID int64
	URL    string
	Anum   int64
	// Edited is true when the entry was updated rather than created.
	Edited bool
}

// outcome is the result of the most recent remote call.
type outcome struct {
	err    error
	errMsg string
}

// Publisher builds a single LiveJournal entry and saves it.
//
// A Publisher is not safe for concurrent use.
type Publisher struct {
	username string
	digest   string

	event           models.Event
	stripLineBreaks bool

	saved  bool
	url    string
	anum   int64
	edited bool
	last   outcome

	client client.Client
	log    logging.Logger
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Publisher)

func WithClient(c client.Client) Option {
	return func(p *Publisher) { p.client = c }
}

func WithLogger(l logging.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// WithClock sets the source of the initial entry time.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// WithLocation sets the time zone entry times are decomposed in.
func WithLocation(loc *time.Location) Option {
	return func(p *Publisher) { p.loc = loc }
}

// New creates a publisher for username. When isDigest is false password is
// the plain account password and is digested here; otherwise it is taken as
// an existing digest.
func New(username, password string, isDigest bool, opts ...Option) *Publisher {
	p := &Publisher{
		username: username,
		digest:   password,
		event:    models.NewEvent(username),
		log:      logging.Nop(),
		now:      time.Now,
		loc:      time.Local,
	}
	if !isDigest {
		p.digest = cryptox.PasswordDigest([]byte(password))
	}
	for _, o := range opts {
		o(p)
	}
	if p.client == nil {
		p.client = client.NewXMLRPCClient(common.DefaultEndpoint, client.WithLogger(p.log))
	}
	p.SetTime(p.now())
	return p
}

// Username returns the account the publisher posts as.
func (p *Publisher) Username() string { return p.username }

// Digest returns the stored password digest.
func (p *Publisher) Digest() string { return p.digest }

// SetTime sets the entry date and time, in the publisher's location.
func (p *Publisher) SetTime(t time.Time) *Publisher {
	t = t.In(p.loc)
	p.event.Year = t.Year()
	p.event.Mon = int(t.Month())
	p.event.Day = t.Day()
	p.event.Hour = t.Hour()
	p.event.Min = t.Minute()
	return p
}

// Time returns the entry time as currently set.
func (p *Publisher) Time() time.Time {
	e := p.event
	return time.Date(e.Year, time.Month(e.Mon), e.Day, e.Hour, e.Min, 0, 0, p.loc)
}

// SetTags replaces the tag list.
func (p *Publisher) SetTags(tags []string) *Publisher {
	p.setProp(models.PropTagList, strings.Join(tags, ","))
	return p
}

// AddTag appends one tag to the tag list.
func (p *Publisher) AddTag(tag string) *Publisher {
	if list := p.event.TagList(); list != "" {
		tag = list + "," + tag
	}
	p.setProp(models.PropTagList, tag)
	return p
}

// SetMetadata sets a documented entry property. The value must match the
// property's kind.
func (p *Publisher) SetMetadata(name models.Prop, value any) error {
	if err := models.ValidateProp(name, value); err != nil {
		return err
	}
	p.setProp(name, value)
	return nil
}

// SetMetadataUnchecked sets any property without validation, for properties
// newer than the table in package models.
func (p *Publisher) SetMetadataUnchecked(name string, value any) *Publisher {
	p.setProp(models.Prop(name), value)
	return p
}

func (p *Publisher) setProp(name models.Prop, value any) {
	if p.event.Props == nil {
		p.event.Props = make(map[string]any)
	}
	p.event.Props[string(name)] = value
}

// SetSubject sets the optional subject line.
func (p *Publisher) SetSubject(subject string) *Publisher {
	p.event.Subject = subject
	return p
}

// SetBody sets the entry text, stripping line breaks if SetDeleteNewLines
// was called.
func (p *Publisher) SetBody(body string) *Publisher {
	p.event.Event = body
	if p.stripLineBreaks {
		p.deleteNewLines()
	}
	return p
}

// SetPrivate makes the entry visible to its author only.
func (p *Publisher) SetPrivate() *Publisher {
	p.event.Security = models.SecurityPrivate
	return p
}

// SetDeleteNewLines removes \r and \n from the body now and from every body
// set later. LiveJournal turns line breaks into <br>, which breaks HTML bodies.
func (p *Publisher) SetDeleteNewLines() *Publisher {
	p.stripLineBreaks = true
	p.deleteNewLines()
	return p
}

func (p *Publisher) deleteNewLines() {
	p.event.Event = strings.NewReplacer("\r", "", "\n", "").Replace(p.event.Event)
}

// SetID makes Save edit the existing entry id instead of posting a new one.
func (p *Publisher) SetID(id int64) *Publisher {
	p.event.ItemID = &id
	return p
}

// Save authenticates and posts or edits the entry. A nil error means the
// server accepted the entry; the receipt carries its id, url and anum.
//
// On failure the id, url and anum from an earlier successful Save are kept.
func (p *Publisher) Save(ctx context.Context) (*Receipt, error) {
	log := p.log.With("op", uuid.NewString(), "user", p.username)

	if err := p.prepareChallenge(ctx, log); err != nil {
		return nil, err
	}

	reply, err := p.submit(ctx, log)
	p.record(err, reply)
	if err != nil {
		log.Warn(ctx, "submit failed", "error", err)
		return nil, err
	}
	if !reply.Complete() {
		p.last.err = ErrIncompleteReply
		log.Warn(ctx, "incomplete reply", "errmsg", p.last.errMsg)
		return nil, ErrIncompleteReply
	}

	receipt := &Receipt{
		ItemID: *reply.ItemID,
		URL:    *reply.URL,
		Anum:   *reply.Anum,
		Edited: p.event.IsEdit(),
	}
	id := receipt.ItemID
	p.event.ItemID = &id
	p.url = receipt.URL
	p.anum = receipt.Anum
	p.edited = receipt.Edited
	p.saved = true

	log.Info(ctx, "entry saved", "itemid", receipt.ItemID, "url", receipt.URL)
	return receipt, nil
}

// prepareChallenge fetches a challenge and fills the auth fields of the
// next request.
func (p *Publisher) prepareChallenge(ctx context.Context, log logging.Logger) error {
	reply, err := p.client.GetChallenge(ctx)
	p.record(err, nil)
	if err != nil {
		log.Warn(ctx, "getchallenge failed", "error", err)
		return fmt.Errorf("%w: %w", ErrChallenge, err)
	}
	if reply == nil {
		p.last.err = client.ErrMalformedReply
		log.Warn(ctx, "getchallenge returned no reply")
		return fmt.Errorf("%w: %w", ErrChallenge, client.ErrMalformedReply)
	}

	p.event.AuthChallenge = reply.Challenge
	p.event.AuthResponse = cryptox.ChallengeResponse(reply.Challenge, p.digest)
	log.Debug(ctx, "challenge received", "expire_time", reply.ExpireTime)
	return nil
}

func (p *Publisher) submit(ctx context.Context, log logging.Logger) (*models.EventReply, error) {
	event := p.event.Clone()
	if event.IsEdit() {
		log.Debug(ctx, "editing entry", "itemid", *event.ItemID)
		return p.client.EditEvent(ctx, &event)
	}
	log.Debug(ctx, "posting entry")
	return p.client.PostEvent(ctx, &event)
}

// record replaces the last call outcome.
func (p *Publisher) record(err error, reply *models.EventReply) {
	p.last = outcome{err: err}
	if reply != nil {
		p.last.errMsg = reply.ErrMsg
	}
}

// Receipt returns the id, url and anum of the last successful Save, or nil
// if nothing was saved yet.
func (p *Publisher) Receipt() *Receipt {
	if !p.saved || p.event.ItemID == nil {
		return nil
	}
	return &Receipt{ItemID: *p.event.ItemID, URL: p.url, Anum: p.anum, Edited: p.edited}
}

// ID returns the entry id, either set with SetID or assigned by the server.
func (p *Publisher) ID() (int64, bool) {
	if p.event.ItemID == nil {
		return 0, false
	}
	return *p.event.ItemID, true
}

// URL returns the entry URL after a successful Save.
func (p *Publisher) URL() string { return p.url }

// Anum returns the entry authentication number after a successful Save.
func (p *Publisher) Anum() int64 { return p.anum }

// Err returns the error of the most recent remote call, or nil.
func (p *Publisher) Err() error { return p.last.err }

// ErrorMessage returns the description of the last failure: the fault
// string, else the reply's errmsg, else the text of a transport error.
// An incomplete reply without errmsg has no message.
func (p *Publisher) ErrorMessage() (string, bool) {
	var f *client.Fault
	switch {
	case errors.As(p.last.err, &f):
		return f.String, true
	case p.last.errMsg != "":
		return p.last.errMsg, true
	case p.last.err != nil && !errors.Is(p.last.err, ErrIncompleteReply):
		return p.last.err.Error(), true
	default:
		return "", false
	}
}

// ErrorCode returns the fault code of the last call, if it was a fault.
func (p *Publisher) ErrorCode() (int, bool) {
	var f *client.Fault
	if errors.As(p.last.err, &f) {
		return f.Code, true
	}
	return 0, false
}

// Payload returns a copy of the current wire payload. The auth fields hold
// whatever the last Save computed.
func (p *Publisher) Payload() models.Event {
	return p.event.Clone()
}
