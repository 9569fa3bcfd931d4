package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/events"
)

func TestQuickEntryService_Create(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	texts := make(chan any, 1)
	e.handle("/api/quick-entry", func(w http.ResponseWriter, r *http.Request) {
		texts <- readJSON(r)["text"]
		writeJSON(w, http.StatusCreated, map[string]any{"entry": map[string]any{"description": "mercado", "amount": "50"}})
	}, http.MethodPost)
	svc := NewQuickEntryService(e.api, e.events, nil)

	_, err := svc.Create(ctx, "   ")
	require.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, e.events.all())

	res, err := svc.Create(ctx, " mercado 50 ")
	require.NoError(t, err)
	assert.Equal(t, "mercado 50", <-texts)
	assert.Equal(t, "mercado", res.Description)
	require.NotNil(t, res.Amount)
	assert.Equal(t, 50.0, *res.Amount)

	got := e.events.all()
	require.Len(t, got, 1)
	assert.Equal(t, events.EntriesChanged, got[0].Kind)
	assert.Equal(t, "quick-entry", got[0].Source)
}

func TestQuickEntryService_BackendRejects(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.handle("/api/quick-entry", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "Não entendi o valor"})
	}, http.MethodPost)
	svc := NewQuickEntryService(e.api, e.events, nil)

	_, err := svc.Create(ctx, "mercado")
	require.ErrorIs(t, err, client.ErrRequestFailed)
	assert.Equal(t, "Não entendi o valor", client.Message(err))
	assert.Empty(t, e.events.all())
}

func TestTelegramService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.handle("/api/telegram/link-code", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"code": "ABC123", "expiresAt": "2024-03-01T10:00:00Z"})
	}, http.MethodPost)
	e.handle("/api/telegram/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"connected": true, "telegramChatId": "987"})
	}, http.MethodGet)
	svc := NewTelegramService(e.api)

	code, err := svc.LinkCode(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", code.Code)
	assert.Equal(t, "2024-03-01T10:00:00Z", code.ExpiresAt)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "987", status.TelegramChatID)
}

func TestTelegramService_LinkCodeWithoutCode(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.handle("/api/telegram/link-code", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodPost)

	_, err := NewTelegramService(e.api).LinkCode(ctx)
	require.ErrorIs(t, err, client.ErrUnexpectedResponse)
}
