package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/ljpost/internal/client/models"
	"github.com/dmitrijs2005/ljpost/internal/common"
	"github.com/dmitrijs2005/ljpost/internal/logging"
	"github.com/kolo/xmlrpc"
)

// maxReplySize caps how much of a reply body is read.
const maxReplySize = 1 << 20

type XMLRPCClient struct {
	endpointURL string
	userAgent   string
	timeout     time.Duration
	httpClient  *http.Client
	log         logging.Logger
}

type Option func(*XMLRPCClient)

// WithHTTPClient replaces the default http.Client, e.g. to tune TLS.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *XMLRPCClient) { c.httpClient = hc }
}

func WithUserAgent(ua string) Option {
	return func(c *XMLRPCClient) { c.userAgent = ua }
}

// WithTimeout bounds every call. Zero disables the per-call deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *XMLRPCClient) { c.timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *XMLRPCClient) { c.log = l }
}

func NewXMLRPCClient(endpointURL string, opts ...Option) *XMLRPCClient {
	c := &XMLRPCClient{
		endpointURL: endpointURL,
		userAgent:   common.DefaultUserAgent,
		timeout:     common.DefaultRequestTimeout,
		httpClient:  &http.Client{},
		log:         logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *XMLRPCClient) GetChallenge(ctx context.Context) (*models.ChallengeReply, error) {
	raw, err := c.call(ctx, MethodGetChallenge, nil)
	if err != nil {
		return nil, err
	}

	challenge, ok := asString(raw["challenge"])
	if !ok || challenge == "" {
		return nil, fmt.Errorf("%w: no challenge in reply", ErrMalformedReply)
	}

	reply := &models.ChallengeReply{Challenge: challenge}
	reply.ServerTime, _ = asInt64(raw["server_time"])
	reply.ExpireTime, _ = asInt64(raw["expire_time"])
	return reply, nil
}

func (c *XMLRPCClient) PostEvent(ctx context.Context, event *models.Event) (*models.EventReply, error) {
	return c.event(ctx, MethodPostEvent, event)
}

func (c *XMLRPCClient) EditEvent(ctx context.Context, event *models.Event) (*models.EventReply, error) {
	return c.event(ctx, MethodEditEvent, event)
}

func (c *XMLRPCClient) event(ctx context.Context, method string, event *models.Event) (*models.EventReply, error) {
	raw, err := c.call(ctx, method, event)
	if err != nil {
		return nil, err
	}
	return decodeEventReply(raw), nil
}

// call performs one XML-RPC round trip. args == nil sends no params.
// A fault reply is returned as *Fault.
func (c *XMLRPCClient) call(ctx context.Context, method string, args any) (map[string]any, error) {
	var params []any
	if args != nil {
		params = []any{args}
	}

	body, err := xmlrpc.EncodeMethodCall(MethodPrefix+method, params...)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", method, err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "text/xml; charset=UTF-8")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	c.log.Debug(ctx, "xml-rpc call", "method", method, "status", resp.StatusCode,
		"bytes", len(data), "elapsed", time.Since(start))
	if err != nil {
		return nil, c.mapError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, resp.Status)
	}

	reply := xmlrpc.Response(data)
	if err := reply.Err(); err != nil {
		var fe xmlrpc.FaultError
		if errors.As(err, &fe) {
			return nil, &Fault{Code: fe.Code, String: fe.String}
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}

	var raw map[string]any
	if err := reply.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	return raw, nil
}

func (c *XMLRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
