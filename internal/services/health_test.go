package services

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService_Check(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	var down atomic.Bool
	e.handle("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodGet)
	svc := NewHealthService(e.api, nil)

	require.NoError(t, svc.Check(ctx))
	down.Store(true)
	require.Error(t, svc.Check(ctx))
}

func TestHealthService_WatchReportsTransitions(t *testing.T) {
	e := newEnv(t)
	var down atomic.Bool
	e.handle("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}, http.MethodGet)
	svc := NewHealthService(e.api, nil)

	ctx, cancel := context.WithCancel(context.Background())
	statuses := make(chan HealthStatus, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.Watch(ctx, 5*time.Millisecond, func(s HealthStatus) { statuses <- s })
	}()

	next := func() HealthStatus {
		t.Helper()
		select {
		case s := <-statuses:
			return s
		case <-time.After(2 * time.Second):
			t.Fatal("no status reported")
			return HealthStatus{}
		}
	}

	first := next()
	assert.True(t, first.Available)
	assert.NoError(t, first.Err)

	down.Store(true)
	s := next()
	assert.False(t, s.Available)
	assert.Error(t, s.Err)

	down.Store(false)
	s = next()
	assert.True(t, s.Available)

	// steady state reports nothing
	select {
	case s := <-statuses:
		t.Fatalf("unexpected status %+v", s)
	case <-time.After(30 * time.Millisecond):
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not stop")
	}
}
