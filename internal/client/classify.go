package client

import (
	"net/http"
	"strings"
)

// classify turns a non-2xx status into an *APIError; 2xx gives nil.
func classify(method, path string, status int, payload any, loginPath string) error {
	if status >= 200 && status < 300 {
		return nil
	}

	e := &APIError{Method: method, Path: path, Status: status, Payload: payload}

	switch {
	case status == http.StatusUnauthorized && isPath(path, loginPath):
		e.Kind = ErrInvalidCredentials
		e.Message = payloadMessage(payload, MsgInvalidCredentials)
	case status == http.StatusUnauthorized:
		e.Kind = ErrSessionExpired
		e.Message = MsgSessionExpired
	case status == http.StatusNotFound:
		e.Kind = ErrEndpointNotFound
		e.Message = MsgEndpointNotFound
	default:
		e.Kind = ErrRequestFailed
		e.Message = payloadMessage(payload, MsgRequestFailed)
	}
	return e
}

// payloadMessage extracts a message from payload: its "message" field, then
// its "error" field, then the payload itself when it is text.
func payloadMessage(payload any, fallback string) string {
	switch p := payload.(type) {
	case map[string]any:
		for _, k := range []string{"message", "error"} {
			if s, ok := p[k].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
	case string:
		if s := strings.TrimSpace(p); s != "" {
			return s
		}
	}
	return fallback
}
