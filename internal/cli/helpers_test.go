package cli

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/export"
	"github.com/romario-developer/despesas-pwa/internal/services"
	"github.com/romario-developer/despesas-pwa/internal/storage"
)

type harness struct {
	db        *sql.DB
	store     *auth.Store
	nav       *auth.MemoryNavigator
	session   *auth.Session
	tracker   *breaker.Tracker
	router    *mux.Router
	svc       Services
	exportDir string
	out       bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	origTerminal := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerminal })

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	h := &harness{db: db, router: mux.NewRouter(), exportDir: t.TempDir()}
	h.store = auth.NewStore(db)
	h.nav = auth.NewMemoryNavigator(auth.RouteHome)
	h.session = auth.NewSession(h.store, h.nav)
	h.tracker = breaker.New(breaker.Config{})

	srv := httptest.NewServer(h.router)
	t.Cleanup(srv.Close)

	api, err := client.New(client.Options{BaseURL: srv.URL, Tokens: h.store, Session: h.session, Tracker: h.tracker})
	require.NoError(t, err)

	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("p%d", n)
	}

	prefs := services.NewPreferences(db, "UTC")
	h.svc = Services{
		Auth:       services.NewAuthService(api, h.session),
		Entries:    services.NewEntryService(api, nil, nil),
		Cards:      services.NewCardService(api),
		Credit:     services.NewCreditService(api),
		Dashboard:  services.NewDashboardService(api, nil, nil),
		Planning:   services.NewPlanningService(api, db, newID),
		QuickEntry: services.NewQuickEntryService(api, nil, nil),
		Assistant:  services.NewAssistantService(api, db, prefs, nil, nil),
		Telegram:   services.NewTelegramService(api),
		Export:     services.NewExportService(api, h.store, "", export.NewFileSink(h.exportDir), nil),
		Health:     services.NewHealthService(api, nil),
		Prefs:      prefs,
	}
	return h
}

func (h *harness) app(input ...string) *App {
	h.out.Reset()
	return NewApp(Options{
		Services: h.svc,
		Session:  h.session,
		Tracker:  h.tracker,
		Timezone: "UTC",
		In:       strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:      &h.out,
	})
}

// run feeds input lines to the REPL and returns everything it printed.
func (h *harness) run(input ...string) string {
	h.app(input...).runREPL(context.Background())
	return h.out.String()
}

func (h *harness) login(t *testing.T) {
	t.Helper()
	require.NoError(t, h.store.SaveToken(context.Background(), "tok-1"))
}

func (h *harness) month(t *testing.T, m string) {
	t.Helper()
	require.NoError(t, h.svc.Prefs.SetSelectedMonth(context.Background(), m))
}

func (h *harness) handle(path string, fn http.HandlerFunc, methods ...string) {
	r := h.router.HandleFunc(path, fn)
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
