package client

import (
	"context"

	"github.com/dmitrijs2005/ljpost/internal/client/models"
)

// Remote procedure names, without the LJ.XMLRPC. prefix.
const (
	MethodPrefix       = "LJ.XMLRPC."
	MethodGetChallenge = "getchallenge"
	MethodPostEvent    = "postevent"
	MethodEditEvent    = "editevent"
)

type Client interface {
	GetChallenge(ctx context.Context) (*models.ChallengeReply, error)
	PostEvent(ctx context.Context, event *models.Event) (*models.EventReply, error)
	EditEvent(ctx context.Context, event *models.Event) (*models.EventReply, error)
}
