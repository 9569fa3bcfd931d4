package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// GetString returns the value under key as text; "" when missing.
func GetString(ctx context.Context, r Repository, key string) (string, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// SetString stores s under key. An empty string deletes the key, matching how
// the browser client treated blank local-storage values.
func SetString(ctx context.Context, r Repository, key, s string) error {
	if s == "" {
		return r.Delete(ctx, key)
	}
	return r.Set(ctx, key, []byte(s))
}

// GetBool reports whether key holds "true".
func GetBool(ctx context.Context, r Repository, key string) (bool, error) {
	s, err := GetString(ctx, r, key)
	if err != nil {
		return false, err
	}
	return s == "true", nil
}

// SetBool stores "true" or removes the key.
func SetBool(ctx context.Context, r Repository, key string, b bool) error {
	if !b {
		return r.Delete(ctx, key)
	}
	return r.Set(ctx, key, []byte("true"))
}

// GetJSON decodes the value under key into dst. It reports false when the key
// is missing or holds something that does not decode; a corrupt snapshot is
// treated like an absent one.
func GetJSON(ctx context.Context, r Repository, key string, dst any) (bool, error) {
	v, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if len(v) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, r Repository, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("kv: encode %q: %w", key, err)
	}
	return r.Set(ctx, key, data)
}
