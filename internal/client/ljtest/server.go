// Package ljtest runs an in-process fake of the LiveJournal XML-RPC
// interface for tests. Requests are decoded with github.com/kolo/xmlrpc and
// recorded; replies are scripted per method.
package ljtest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/kolo/xmlrpc"
)

// Path is where the fake interface is mounted.
const Path = "/interface/xmlrpc"

// Call is one recorded request.
type Call struct {
	Method string
	Params map[string]any
	Header http.Header
}

// Reply scripts the answer to a call. Exactly one of Fault, Values or Raw is
// used, in that order of precedence. Status defaults to 200.
type Reply struct {
	Status int
	Fault  *xmlrpc.FaultError
	Values map[string]any
	Raw    string
}

// Handler produces the reply for a decoded call.
type Handler func(call Call) Reply

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	calls    []Call
	handlers map[string]Handler
}

// NewServer starts a fake endpoint. Close it with s.Close.
func NewServer() *Server {
	s := &Server{handlers: make(map[string]Handler)}

	r := mux.NewRouter()
	r.HandleFunc(Path, s.serveRPC).Methods(http.MethodPost)

	s.Server = httptest.NewServer(r)
	return s
}

// Endpoint is the URL to hand to a client.
func (s *Server) Endpoint() string {
	return s.URL + Path
}

// Handle scripts the reply for the fully qualified method name.
func (s *Server) Handle(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

// Calls returns a copy of the recorded calls.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallCount returns how many times method was called.
func (s *Server) CallCount(method string) int {
	n := 0
	for _, c := range s.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (s *Server) serveRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	call, err := decodeCall(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	call.Header = r.Header.Clone()

	s.mu.Lock()
	s.calls = append(s.calls, call)
	h, ok := s.handlers[call.Method]
	s.mu.Unlock()

	reply := Fault(-32601, "server error. requested method "+call.Method+" does not exist.")
	if ok {
		reply = h(call)
	}

	out, err := encodeReply(reply)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}

type methodCall struct {
	MethodName string `xml:"methodName"`
}

func decodeCall(body []byte) (Call, error) {
	var mc methodCall
	if err := xml.Unmarshal(body, &mc); err != nil {
		return Call{}, fmt.Errorf("decode methodCall: %w", err)
	}

	call := Call{Method: mc.MethodName}
	if bytes.Contains(body, []byte("<params>")) {
		if err := xmlrpc.Response(body).Unmarshal(&call.Params); err != nil {
			return Call{}, fmt.Errorf("decode params: %w", err)
		}
	}
	return call, nil
}

// encodeValue renders v as an XML-RPC <value> using the client codec.
func encodeValue(v any) (string, error) {
	b, err := xmlrpc.EncodeMethodCall("v", v)
	if err != nil {
		return "", err
	}
	s := string(b)
	start := strings.Index(s, "<param>")
	end := strings.LastIndex(s, "</param>")
	if start < 0 || end < 0 {
		return "", fmt.Errorf("unexpected encoding %q", s)
	}
	return s[start+len("<param>") : end], nil
}

func encodeReply(r Reply) ([]byte, error) {
	const header = `<?xml version="1.0" encoding="UTF-8"?><methodResponse>`

	switch {
	case r.Fault != nil:
		v, err := encodeValue(*r.Fault)
		if err != nil {
			return nil, err
		}
		return []byte(header + "<fault>" + v + "</fault></methodResponse>"), nil
	case r.Values != nil:
		v, err := encodeValue(r.Values)
		if err != nil {
			return nil, err
		}
		return []byte(header + "<params><param>" + v + "</param></params></methodResponse>"), nil
	default:
		return []byte(r.Raw), nil
	}
}
