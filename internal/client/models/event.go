// Package models defines the LiveJournal wire payloads exchanged by the
// ljpost client: the postevent/editevent request, the typed property list,
// and the decoded replies.
package models

import "maps"

// Security is the visibility of an entry.
type Security string

const (
	SecurityPublic  Security = "public"
	SecurityPrivate Security = "private"
)

const (
	// AuthMethodChallenge selects challenge-response authentication.
	AuthMethodChallenge = "challenge"
	// LineEndingsUnix tells the server the body uses bare \n.
	LineEndingsUnix = "unix"
	// ProtocolVersion 1 means the body is UTF-8.
	ProtocolVersion = 1
)

// Event is the argument struct of LJ.XMLRPC.postevent and LJ.XMLRPC.editevent.
// The xmlrpc tags are the member names the server expects.
type Event struct {
	Username      string         `xmlrpc:"username"`
	AuthMethod    string         `xmlrpc:"auth_method"`
	AuthChallenge string         `xmlrpc:"auth_challenge"`
	AuthResponse  string         `xmlrpc:"auth_response"`
	Year          int            `xmlrpc:"year"`
	Mon           int            `xmlrpc:"mon"`
	Day           int            `xmlrpc:"day"`
	Hour          int            `xmlrpc:"hour"`
	Min           int            `xmlrpc:"min"`
	Subject       string         `xmlrpc:"subject,omitempty"`
	Event         string         `xmlrpc:"event"`
	Security      Security       `xmlrpc:"security"`
	LineEndings   string         `xmlrpc:"lineendings"`
	Ver           int            `xmlrpc:"ver"`
	ItemID        *int64         `xmlrpc:"itemid,omitempty"`
	Props         map[string]any `xmlrpc:"props,omitempty"`
}

// NewEvent returns an Event with the fixed protocol fields filled in and
// public visibility.
func NewEvent(username string) Event {
	return Event{
		Username:    username,
		AuthMethod:  AuthMethodChallenge,
		Security:    SecurityPublic,
		LineEndings: LineEndingsUnix,
		Ver:         ProtocolVersion,
	}
}

// IsEdit reports whether the event targets an existing entry.
func (e Event) IsEdit() bool {
	return e.ItemID != nil
}

// TagList returns the comma joined tag list property, or "".
func (e Event) TagList() string {
	s, _ := e.Props[string(PropTagList)].(string)
	return s
}

// Clone returns a deep copy safe to hand out to callers.
func (e Event) Clone() Event {
	if e.ItemID != nil {
		id := *e.ItemID
		e.ItemID = &id
	}
	e.Props = maps.Clone(e.Props)
	return e
}

// ChallengeReply is the decoded result of LJ.XMLRPC.getchallenge.
type ChallengeReply struct {
	Challenge  string
	ServerTime int64
	ExpireTime int64
}

// EventReply is the decoded result of postevent/editevent. A nil pointer
// means the member was absent from the reply.
type EventReply struct {
	ItemID *int64
	URL    *string
	Anum   *int64
	// ErrMsg carries the optional human readable "errmsg" member.
	ErrMsg string
}

// Complete reports whether the reply carries itemid, url and anum.
func (r *EventReply) Complete() bool {
	return r != nil && r.ItemID != nil && r.URL != nil && r.Anum != nil
}
