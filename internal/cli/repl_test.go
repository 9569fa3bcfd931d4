package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/client"
)

func loginBackend(h *harness, mustChange bool) {
	h.handle("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if readJSON(r)["password"] != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Senha incorreta"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "tok-1", "mustChangePassword": mustChange})
	}, http.MethodPost)
	h.handle("/api/me", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"name": "Ana", "email": "ana@example.com"})
	}, http.MethodGet)
}

func TestREPL_GuardSendsToLogin(t *testing.T) {
	h := newHarness(t)

	out := h.run("entries", "exit")

	assert.Contains(t, out, "Você precisa entrar primeiro")
	assert.Contains(t, out, "Até logo!")
	assert.Equal(t, auth.RouteLogin, h.nav.Current())
}

func TestREPL_UnknownCommandAndHelp(t *testing.T) {
	h := newHarness(t)

	out := h.run("frobnicate", "help")

	assert.Contains(t, out, "Comando desconhecido: frobnicate")
	assert.Contains(t, out, "login")
	assert.NotContains(t, out, "entries", "protected commands are hidden before login")

	h.login(t)
	out = h.run("?")
	assert.Contains(t, out, "entries")
	assert.Contains(t, out, "plan-push")
}

func TestREPL_LoginThenEntries(t *testing.T) {
	h := newHarness(t)
	loginBackend(h, false)
	h.handle("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2024-03-01", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-03-31", r.URL.Query().Get("to"))
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"id": "e1", "description": "Mercado", "amount": 45.9, "category": "Casa", "date": "2024-03-02", "paymentMethod": "Pix"},
			map[string]any{"id": "e2", "description": "Uber", "amount": 12.1, "date": "2024-03-03"},
		})
	}, http.MethodGet)
	h.month(t, "2024-03")

	out := h.run("login", "wrong", "login", "secret", "entries", "exit")

	assert.Contains(t, out, "Erro: Senha incorreta")
	assert.Contains(t, out, "Login efetuado.")
	assert.Contains(t, out, "Mercado")
	assert.Contains(t, out, "02/03/2024")
	assert.Contains(t, out, "2 lançamento(s), total R$ 58,00")
	assert.Contains(t, out, "despesas (Ana · Março 2024 · /entries)>")
}

func TestREPL_PasswordChangeIsEnforced(t *testing.T) {
	h := newHarness(t)
	loginBackend(h, true)
	changed := make(chan map[string]any, 1)
	h.handle("/api/me/password", func(w http.ResponseWriter, r *http.Request) {
		changed <- readJSON(r)
		w.WriteHeader(http.StatusNoContent)
	}, http.MethodPost)
	h.handle("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []any{})
	}, http.MethodGet)

	out := h.run(
		"login", "secret",
		"entries",
		"passwd", "secret", "new-password", "typo-password",
		"passwd", "secret", "new-password", "new-password",
		"entries",
		"exit",
	)

	assert.Contains(t, out, "Defina uma nova senha com 'passwd'")
	assert.Contains(t, out, "Defina uma nova senha antes de continuar")
	assert.Contains(t, out, "As senhas não conferem.")
	assert.Contains(t, out, "Senha alterada.")
	assert.Contains(t, out, "Nenhum lançamento")
	assert.Equal(t, map[string]any{"currentPassword": "secret", "newPassword": "new-password"}, <-changed)

	must, err := h.store.MustChangePassword(context.Background())
	require.NoError(t, err)
	assert.False(t, must)
}

func TestREPL_SessionExpiredMidCommand(t *testing.T) {
	h := newHarness(t)
	h.handle("/api/cards", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, http.MethodGet)
	h.login(t)

	out := h.run("cards", "exit")

	assert.Contains(t, out, client.MsgSessionExpired+" Use 'login' para entrar novamente.")
	assert.Equal(t, auth.RouteLogin, h.nav.Current())

	tok, err := h.store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestREPL_AddEditDeleteEntry(t *testing.T) {
	h := newHarness(t)
	created := make(chan map[string]any, 1)
	updated := make(chan map[string]any, 1)
	deleted := make(chan string, 1)

	h.handle("/api/entries", func(w http.ResponseWriter, r *http.Request) {
		body := readJSON(r)
		created <- body
		body["id"] = "e9"
		writeJSON(w, http.StatusCreated, body)
	}, http.MethodPost)
	h.handle("/api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": "e9", "description": "Feira", "amount": 30.5, "category": "Alimentação", "date": "2024-03-05", "paymentMethod": "Pix"})
	}, http.MethodGet)
	h.handle("/api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		body := readJSON(r)
		updated <- body
		body["id"] = "e9"
		writeJSON(w, http.StatusOK, body)
	}, http.MethodPut)
	h.handle("/api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted <- r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}, http.MethodDelete)
	h.login(t)
	h.month(t, "2024-03")

	out := h.run(
		"add", "Feira", "abc", "30,50", "Alimentação", "", "pix",
		"edit e9", "", "", "", "2024-03-06", "",
		"rm e9", "s",
		"exit",
	)

	assert.Contains(t, out, "Valor inválido")
	assert.Contains(t, out, "Lançamento criado (e9).")
	assert.Contains(t, out, "Lançamento atualizado.")
	assert.Contains(t, out, "Lançamento apagado.")

	c := <-created
	assert.Equal(t, "Feira", c["description"])
	assert.EqualValues(t, 30.5, c["amount"])
	assert.Equal(t, "2024-03-01", c["date"], "outside the current month the form starts on day 1")
	assert.Equal(t, "Pix", c["paymentMethod"])

	u := <-updated
	assert.Equal(t, "Feira", u["description"])
	assert.EqualValues(t, 30.5, u["amount"])
	assert.Equal(t, "2024-03-06", u["date"])

	assert.Equal(t, "/api/entries/e9", <-deleted)
	assert.Equal(t, "/entries", h.nav.Current())
}

func TestREPL_EOFEndsLoop(t *testing.T) {
	h := newHarness(t)
	h.login(t)

	out := h.run("month 2024-02")

	assert.Contains(t, out, "Fevereiro 2024")
	assert.NotContains(t, out, "Até logo!")
}
