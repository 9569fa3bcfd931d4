package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/logging"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultLoginPath = "/api/auth/login"
)

type Options struct {
	BaseURL string
	Timeout time.Duration
	Verbose bool

	// HTTP replaces the default *http.Client; Timeout is then ignored.
	HTTP Doer

	Tokens    TokenSource
	Session   SessionHandler
	Tracker   *breaker.Tracker
	Logger    logging.Logger
	LoginPath string
}

// Client talks JSON to the backend through the middleware chain
// logging -> breaker -> session -> auth -> transport.
type Client struct {
	base      string
	doer      Doer
	logger    logging.Logger
	loginPath string
	tracker   *breaker.Tracker
}

func New(opts Options) (*Client, error) {
	base, hadAPI, err := ResolveBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logger.With(logging.FieldComponent, logging.ComponentHTTP)

	if opts.Verbose {
		note := ""
		if hadAPI {
			note = " (removed /api suffix)"
		}
		logger.Info(context.Background(), "api base url: "+base+note)
	}

	transport := opts.HTTP
	if transport == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		transport = &http.Client{Timeout: timeout}
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = breaker.New(breaker.Config{})
	}

	loginPath := opts.LoginPath
	if loginPath == "" {
		loginPath = DefaultLoginPath
	}

	doer := Chain(transport,
		WithLogging(logger, opts.Verbose),
		WithBreaker(tracker, logger),
		WithSession(opts.Session, loginPath, logger),
		WithAuth(opts.Tokens),
	)

	return &Client{
		base:      base,
		doer:      doer,
		logger:    logger,
		loginPath: loginPath,
		tracker:   tracker,
	}, nil
}

func (c *Client) BaseURL() string           { return c.base }
func (c *Client) Tracker() *breaker.Tracker { return c.tracker }

// Request describes one call. Body, when set, is sent as JSON.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Response is a successful reply. Payload holds the decoded JSON body
// (numbers as json.Number), the body as a string when it is not JSON, or nil
// when it is empty.
type Response struct {
	Status  int
	Header  http.Header
	Body    []byte
	Payload any
}

// Do sends r and classifies the outcome. Any non-2xx reply or transport
// failure comes back as an *APIError.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	req, err := c.newRequest(ctx, r)
	if err != nil {
		return nil, err
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// middleware only sees the full URL path
			apiErr.Path = r.Path
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &APIError{
			Method:  r.Method,
			Path:    r.Path,
			Message: MsgUnavailable,
			Kind:    ErrUnavailable,
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{
			Method:  r.Method,
			Path:    r.Path,
			Status:  resp.StatusCode,
			Message: MsgUnavailable,
			Kind:    ErrUnavailable,
			Cause:   err,
		}
	}

	payload := decodePayload(body)
	if err := classify(r.Method, r.Path, resp.StatusCode, payload, c.loginPath); err != nil {
		return nil, err
	}

	return &Response{
		Status:  resp.StatusCode,
		Header:  resp.Header,
		Body:    body,
		Payload: payload,
	}, nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body any) (any, error) {
	resp, err := c.Do(ctx, Request{Method: method, Path: path, Query: query, Body: body})
	if err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (any, error) {
	return c.call(ctx, http.MethodGet, path, query, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (any, error) {
	return c.call(ctx, http.MethodPost, path, nil, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (any, error) {
	return c.call(ctx, http.MethodPut, path, nil, body)
}

func (c *Client) Patch(ctx context.Context, path string, body any) (any, error) {
	return c.call(ctx, http.MethodPatch, path, nil, body)
}

func (c *Client) Delete(ctx context.Context, path string) (any, error) {
	return c.call(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}

	target := c.base + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		data, err := json.Marshal(r.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", r.Method, r.Path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", r.Method, r.Path, err)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if r.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	return req, nil
}

func decodePayload(body []byte) any {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(body)
	}
	return v
}
