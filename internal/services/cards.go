package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const pathCards = "/api/cards"

type CardService interface {
	List(ctx context.Context) ([]models.CreditCard, error)
	Create(ctx context.Context, p models.CardPayload) (models.CreditCard, error)
	Update(ctx context.Context, id string, p models.CardPayload) (models.CreditCard, error)
	Delete(ctx context.Context, id string) error
	Invoices(ctx context.Context, cardID string) ([]models.CardInvoice, error)
	// PayInvoice registers a payment of amount on date (YYYY-MM-DD)
	// against the card's open invoice.
	PayInvoice(ctx context.Context, cardID string, amount float64, date string) error
}

type cardService struct {
	api API
}

func NewCardService(api API) CardService {
	return &cardService{api: api}
}

func (s *cardService) List(ctx context.Context) ([]models.CreditCard, error) {
	payload, err := s.api.Get(ctx, pathCards, nil)
	if err != nil {
		return nil, err
	}
	return models.NormalizeCards(payload), nil
}

func (s *cardService) Create(ctx context.Context, p models.CardPayload) (models.CreditCard, error) {
	return s.one(ctx, http.MethodPost, pathCards, p.Normalized())
}

func (s *cardService) Update(ctx context.Context, id string, p models.CardPayload) (models.CreditCard, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.CreditCard{}, ErrEmptyID
	}
	return s.one(ctx, http.MethodPut, resource(pathCards, id), p.Normalized())
}

func (s *cardService) Delete(ctx context.Context, id string) error {
	if id = strings.TrimSpace(id); id == "" {
		return ErrEmptyID
	}
	_, err := s.api.Delete(ctx, resource(pathCards, id))
	return err
}

func (s *cardService) Invoices(ctx context.Context, cardID string) ([]models.CardInvoice, error) {
	if cardID = strings.TrimSpace(cardID); cardID == "" {
		return nil, ErrEmptyID
	}
	payload, err := s.api.Get(ctx, resource(pathCards, cardID)+"/invoices", nil)
	if err != nil {
		return nil, err
	}
	invoices := models.NormalizeInvoices(payload)
	for i := range invoices {
		if invoices[i].CardID == "" {
			invoices[i].CardID = cardID
		}
	}
	return invoices, nil
}

func (s *cardService) PayInvoice(ctx context.Context, cardID string, amount float64, date string) error {
	if cardID = strings.TrimSpace(cardID); cardID == "" {
		return ErrEmptyID
	}
	if amount <= 0 {
		return ErrInvalidAmount
	}
	date = strings.TrimSpace(date)
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return ErrInvalidDate
	}
	_, err := s.api.Post(ctx, resource(pathCards, cardID)+"/invoices/pay", map[string]any{
		"amount":      amount,
		"paymentDate": date,
	})
	return err
}

func (s *cardService) one(ctx context.Context, method, path string, body any) (models.CreditCard, error) {
	resp, err := s.api.Do(ctx, client.Request{Method: method, Path: path, Body: body})
	if err != nil {
		return models.CreditCard{}, err
	}
	c, ok := models.NormalizeCard(resp.Payload)
	if !ok {
		return models.CreditCard{}, client.Unexpected(method, path, resp.Status, resp.Payload)
	}
	return c, nil
}
