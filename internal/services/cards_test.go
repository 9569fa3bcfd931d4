package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

func TestCardService_ListAndCreate(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	sent := make(chan map[string]any, 1)

	e.handle("/api/cards", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"cards": []any{
			map[string]any{"_id": "c1", "name": "Nubank", "brand": "mastercard", "credit_limit": "5000", "closingDate": "2024-03-03", "dueDay": 10},
			map[string]any{"id": "c2"},
		}})
	}, http.MethodGet)
	e.handle("/api/cards", func(w http.ResponseWriter, r *http.Request) {
		body := readJSON(r)
		sent <- body
		body["id"] = "c9"
		writeJSON(w, http.StatusCreated, body)
	}, http.MethodPost)

	svc := NewCardService(e.api)

	cards, err := svc.List(ctx)
	require.NoError(t, err)
	want := []models.CreditCard{{ID: "c1", Name: "Nubank", Brand: "mastercard", Limit: 5000, ClosingDay: 3, DueDay: 10}}
	assert.Empty(t, cmp.Diff(want, cards))

	card, err := svc.Create(ctx, models.CardPayload{Name: "  Inter ", Brand: "master card", Limit: 1200})
	require.NoError(t, err)
	assert.Equal(t, "c9", card.ID)
	assert.Equal(t, "Inter", card.Name)

	body := <-sent
	assert.Equal(t, "Inter", body["name"])
	assert.Equal(t, models.BrandMastercard, body["brand"])
	assert.EqualValues(t, 1200, body["limit"])
}

func TestCardService_UpdateDeleteInvoices(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	e.handle("/api/cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodPut)
	e.handle("/api/cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, http.MethodDelete)
	e.handle("/api/cards/{id}/invoices", func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		writeJSON(w, http.StatusOK, []any{
			map[string]any{"invoiceId": "i1", "reference": "2024-03", "amount": 321.5, "status": "paid"},
			map[string]any{"id": "i2", "month": "2024-04", "total": 10, "cardId": "other"},
			map[string]any{"id": "bad-" + id},
		})
	}, http.MethodGet)

	svc := NewCardService(e.api)

	_, err := svc.Update(ctx, "c1", models.CardPayload{Name: "x"})
	require.ErrorIs(t, err, client.ErrUnexpectedResponse)

	_, err = svc.Update(ctx, "", models.CardPayload{})
	require.ErrorIs(t, err, ErrEmptyID)

	require.NoError(t, svc.Delete(ctx, "c1"))

	inv, err := svc.Invoices(ctx, "c1")
	require.NoError(t, err)
	want := []models.CardInvoice{
		{ID: "i1", CardID: "c1", Month: "2024-03", Total: 321.5, Status: "paid", Paid: true},
		{ID: "i2", CardID: "other", Month: "2024-04", Total: 10},
	}
	assert.Empty(t, cmp.Diff(want, inv))
}

func TestCardService_PayInvoice(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	type call struct {
		id   string
		body map[string]any
	}
	got := make(chan call, 1)
	e.handle("/api/cards/{id}/invoices/pay", func(w http.ResponseWriter, r *http.Request) {
		got <- call{id: mux.Vars(r)["id"], body: readJSON(r)}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}, http.MethodPost)

	svc := NewCardService(e.api)

	require.ErrorIs(t, svc.PayInvoice(ctx, " ", 10, "2024-03-10"), ErrEmptyID)
	require.ErrorIs(t, svc.PayInvoice(ctx, "c1", 0, "2024-03-10"), ErrInvalidAmount)
	require.ErrorIs(t, svc.PayInvoice(ctx, "c1", -5, "2024-03-10"), ErrInvalidAmount)
	require.ErrorIs(t, svc.PayInvoice(ctx, "c1", 10, "10/03/2024"), ErrInvalidDate)

	require.NoError(t, svc.PayInvoice(ctx, "c1", 250.75, " 2024-03-10 "))
	c := <-got
	assert.Equal(t, "c1", c.id)
	assert.Equal(t, map[string]any{"amount": 250.75, "paymentDate": "2024-03-10"}, c.body)
}

func TestCardService_PayInvoiceServerError(t *testing.T) {
	e := newEnv(t)
	e.handle("/api/cards/{id}/invoices/pay", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"message": "Valor maior que a fatura"})
	}, http.MethodPost)

	err := NewCardService(e.api).PayInvoice(context.Background(), "c1", 9999, "2024-03-10")
	require.Error(t, err)
	assert.Equal(t, "Valor maior que a fatura", client.Message(err))
}
