package client

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrNoBaseURL = errors.New("api base url is not configured")

// ResolveBaseURL trims raw, drops trailing slashes and a trailing "/api"
// segment (every request path already starts with /api). The second result
// reports whether the suffix was removed.
func ResolveBaseURL(raw string) (string, bool, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "", false, ErrNoBaseURL
	}

	hadAPI := strings.HasSuffix(strings.ToLower(base), "/api")
	if hadAPI {
		base = strings.TrimRight(base[:len(base)-len("/api")], "/")
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", hadAPI, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", hadAPI, fmt.Errorf("api base url %q must be an absolute http(s) url", raw)
	}

	return base, hadAPI, nil
}
