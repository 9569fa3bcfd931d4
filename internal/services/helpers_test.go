package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/storage"
)

type testEnv struct {
	db      *sql.DB
	store   *auth.Store
	nav     *auth.MemoryNavigator
	session *auth.Session
	router  *mux.Router
	srv     *httptest.Server
	api     *client.Client
	events  *recorder
}

// recorder is an events.Notifier that keeps what it was given.
type recorder struct {
	mu  sync.Mutex
	got []events.Event
}

func (r *recorder) Notify(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, e)
	return nil
}

func (r *recorder) all() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.got...)
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &testEnv{db: db, router: mux.NewRouter(), events: &recorder{}}
	e.store = auth.NewStore(db)
	e.nav = auth.NewMemoryNavigator(auth.RouteHome)
	e.session = auth.NewSession(e.store, e.nav)

	e.srv = httptest.NewServer(e.router)
	t.Cleanup(e.srv.Close)

	e.api, err = client.New(client.Options{
		BaseURL: e.srv.URL,
		Tokens:  e.store,
		Session: e.session,
	})
	require.NoError(t, err)
	return e
}

// login stores a token as if a login had happened.
func (e *testEnv) login(t *testing.T, token string) {
	t.Helper()
	require.NoError(t, e.store.SaveToken(context.Background(), token))
}

func (e *testEnv) handle(path string, fn http.HandlerFunc, methods ...string) {
	r := e.router.HandleFunc(path, fn)
	if len(methods) > 0 {
		r.Methods(methods...)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request) map[string]any {
	var m map[string]any
	_ = json.NewDecoder(r.Body).Decode(&m)
	return m
}
