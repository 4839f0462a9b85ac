package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrFault          = errors.New("xml-rpc fault")
	ErrMalformedReply = errors.New("malformed xml-rpc reply")
)

// Fault is a structured XML-RPC error reply. It matches ErrFault with
// errors.Is; use errors.As to read the code and description.
type Fault struct {
	Code   int
	String string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d: %s", f.Code, f.String)
}

func (f *Fault) Is(target error) bool {
	return target == ErrFault
}

// faultUnauthorized lists LiveJournal fault codes caused by bad credentials.
var faultUnauthorized = map[int]struct{}{
	100: {}, // invalid username
	101: {}, // invalid password
	105: {}, // client temporarily disabled after failed logins
}

// Unauthorized reports whether the fault is an authentication failure.
func (f *Fault) Unauthorized() bool {
	_, ok := faultUnauthorized[f.Code]
	return ok
}
