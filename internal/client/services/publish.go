package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/client/client"
	"github.com/dmitrijs2005/ljpost/internal/client/models"
	"github.com/dmitrijs2005/ljpost/internal/client/publisher"
	"github.com/dmitrijs2005/ljpost/internal/logging"
)

// Account identifies who posts. Password is either the plain password or,
// when IsDigest is set, its digest.
type Account struct {
	Username string
	Password string
	IsDigest bool
	// Remember stores the digest in the credential cache after a successful
	// save.
	Remember bool
	// Cached is set when the digest came from the credential cache.
	Cached bool
}

// Draft is one entry to post or edit.
type Draft struct {
	Subject       string
	Body          string
	Tags          []string
	Props         []models.PropValue
	Private       bool
	StripNewlines bool
	// Time defaults to now when zero.
	Time time.Time
	// ItemID selects edit mode when non-zero.
	ItemID int64
}

// Failure describes a save the server refused or never answered.
type Failure struct {
	Code    int
	HasCode bool
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.HasCode {
		return fmt.Sprintf("Error (code %d): %s", f.Code, f.Message)
	}
	return "Error: " + f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

type PublishService interface {
	Publish(ctx context.Context, acc Account, d Draft) (*publisher.Receipt, error)
}

type publishService struct {
	client client.Client
	creds  CredentialService
	log    logging.Logger
}

// NewPublishService wires a publisher factory around c. creds may be nil, in
// which case Account.Remember is ignored.
func NewPublishService(c client.Client, creds CredentialService, log logging.Logger) PublishService {
	if log == nil {
		log = logging.Nop()
	}
	return &publishService{client: c, creds: creds, log: log}
}

func (s *publishService) Publish(ctx context.Context, acc Account, d Draft) (*publisher.Receipt, error) {
	p := publisher.New(acc.Username, acc.Password, acc.IsDigest,
		publisher.WithClient(s.client),
		publisher.WithLogger(s.log),
	)

	if err := applyDraft(p, d); err != nil {
		return nil, err
	}

	receipt, err := p.Save(ctx)
	if err != nil {
		f := &Failure{Err: err}
		f.Code, f.HasCode = p.ErrorCode()
		if msg, ok := p.ErrorMessage(); ok {
			f.Message = msg
		} else {
			f.Message = err.Error()
		}
		return nil, f
	}

	if acc.Remember && s.creds != nil {
		if err := s.creds.Remember(ctx, p.Username(), p.Digest()); err != nil {
			s.log.Warn(ctx, "could not remember credentials", "user", p.Username(), "error", err)
		}
	}
	return receipt, nil
}

func applyDraft(p *publisher.Publisher, d Draft) error {
	p.SetSubject(d.Subject).SetBody(d.Body)

	if d.StripNewlines {
		p.SetDeleteNewLines()
	}
	if len(d.Tags) > 0 {
		p.SetTags(d.Tags)
	}
	for _, pv := range d.Props {
		if err := p.SetMetadata(pv.Name, pv.Value); err != nil {
			return err
		}
	}
	if d.Private {
		p.SetPrivate()
	}
	if !d.Time.IsZero() {
		p.SetTime(d.Time)
	}
	if d.ItemID != 0 {
		p.SetID(d.ItemID)
	}
	return nil
}
