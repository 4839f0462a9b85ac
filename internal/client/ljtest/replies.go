package ljtest

import "github.com/kolo/xmlrpc"

// Method names as they appear on the wire.
const (
	GetChallenge = "LJ.XMLRPC.getchallenge"
	PostEvent    = "LJ.XMLRPC.postevent"
	EditEvent    = "LJ.XMLRPC.editevent"
)

// Fault builds a fault reply.
func Fault(code int, msg string) Reply {
	return Reply{Fault: &xmlrpc.FaultError{Code: code, String: msg}}
}

// Challenge builds a getchallenge reply.
func Challenge(token string) Reply {
	return Reply{Values: map[string]any{
		"auth_scheme": "c0",
		"challenge":   token,
		"expire_time": 1073113260,
		"server_time": 1073113200,
	}}
}

// Event builds a postevent/editevent reply.
func Event(itemID int, url string, anum int) Reply {
	return Reply{Values: map[string]any{
		"itemid": itemID,
		"url":    url,
		"anum":   anum,
	}}
}

// Static returns a handler answering every call with r.
func Static(r Reply) Handler {
	return func(Call) Reply { return r }
}
