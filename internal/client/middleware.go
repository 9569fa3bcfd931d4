package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/logging"
)

// Doer sends a request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type DoerFunc func(req *http.Request) (*http.Response, error)

func (f DoerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Middleware decorates a Doer.
type Middleware func(Doer) Doer

// Chain wraps d so that mws[0] is the outermost layer.
func Chain(d Doer, mws ...Middleware) Doer {
	for i := len(mws) - 1; i >= 0; i-- {
		d = mws[i](d)
	}
	return d
}

// TokenSource supplies the bearer token; "" means anonymous.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionHandler reacts to a session the server rejected.
type SessionHandler interface {
	Expire(ctx context.Context, message string) error
}

// WithAuth sets Authorization: Bearer <token> unless the request already has
// an Authorization header.
func WithAuth(tokens TokenSource) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			if tokens == nil || req.Header.Get("Authorization") != "" {
				return next.Do(req)
			}
			token, err := tokens.Token(req.Context())
			if err != nil {
				return nil, err
			}
			if token != "" {
				req = req.Clone(req.Context())
				req.Header.Set("Authorization", "Bearer "+token)
			}
			return next.Do(req)
		})
	}
}

// WithBreaker rejects requests to blocked endpoints before they reach the
// network and records a failure for every 404.
func WithBreaker(tracker *breaker.Tracker, logger logging.Logger) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			key := breaker.Key(req.Method, req.URL.Path)
			if until, blocked := tracker.Check(key); blocked {
				return nil, &APIError{
					Method:  req.Method,
					Path:    req.URL.Path,
					Message: MsgEndpointBlocked,
					Payload: map[string]any{"blockedUntil": until.Format(time.RFC3339)},
					Kind:    ErrEndpointBlocked,
				}
			}

			resp, err := next.Do(req)
			if err != nil {
				return resp, err
			}

			if resp.StatusCode == http.StatusNotFound && tracker.RecordFailure(key) {
				until, _ := tracker.Check(key)
				logger.Warn(req.Context(), "endpoint blocked after repeated 404 responses",
					logging.FieldEndpoint, key,
					logging.FieldUntil, until,
				)
			}
			return resp, nil
		})
	}
}

// WithSession hands every 401 outside the login endpoint to h.
func WithSession(h SessionHandler, loginPath string, logger logging.Logger) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			resp, err := next.Do(req)
			if err != nil || h == nil {
				return resp, err
			}

			if resp.StatusCode == http.StatusUnauthorized && !isPath(req.URL.Path, loginPath) {
				if err := h.Expire(req.Context(), MsgSessionExpired); err != nil {
					logger.Error(req.Context(), "failed to clear expired session", logging.FieldError, err)
				}
			}
			return resp, nil
		})
	}
}

// WithLogging logs the method and URL of each request when verbose, and the
// outcome at debug level.
func WithLogging(logger logging.Logger, verbose bool) Middleware {
	return func(next Doer) Doer {
		return DoerFunc(func(req *http.Request) (*http.Response, error) {
			ctx := req.Context()
			if verbose {
				logger.Info(ctx, "request",
					logging.FieldMethod, req.Method,
					logging.FieldURL, req.URL.String(),
				)
			}

			start := time.Now()
			resp, err := next.Do(req)
			elapsed := time.Since(start).Milliseconds()

			if err != nil {
				logger.Debug(ctx, "request failed",
					logging.FieldMethod, req.Method,
					logging.FieldPath, req.URL.Path,
					logging.FieldDuration, elapsed,
					logging.FieldError, err,
				)
				return resp, err
			}

			logger.Debug(ctx, "response",
				logging.FieldMethod, req.Method,
				logging.FieldPath, req.URL.Path,
				logging.FieldStatusCode, resp.StatusCode,
				logging.FieldDuration, elapsed,
			)
			return resp, nil
		})
	}
}

// isPath compares the request path with an API path, ignoring any prefix the
// base URL contributed.
func isPath(reqPath, apiPath string) bool {
	return strings.HasSuffix(strings.TrimRight(reqPath, "/"), apiPath)
}
