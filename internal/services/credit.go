package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/months"
)

const (
	pathCreditOverview = "/api/credit/overview"
	pathCreditCards    = "/api/credit/cards"

	// DefaultForecastMonths is how far Forecast looks ahead when asked for 0.
	DefaultForecastMonths = 6
)

type CreditService interface {
	Overview(ctx context.Context, month string) ([]models.CreditOverviewCard, error)
	Invoice(ctx context.Context, cardID, month string) ([]models.CreditInvoiceItem, error)
	Forecast(ctx context.Context, cardID string, n int) ([]models.CreditForecastItem, error)
}

type creditService struct {
	api API
}

func NewCreditService(api API) CreditService {
	return &creditService{api: api}
}

func (s *creditService) Overview(ctx context.Context, month string) ([]models.CreditOverviewCard, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	payload, err := s.api.Get(ctx, pathCreditOverview, url.Values{"month": {month}})
	if err != nil {
		return nil, err
	}
	return models.NormalizeCreditOverview(payload), nil
}

func (s *creditService) Invoice(ctx context.Context, cardID, month string) ([]models.CreditInvoiceItem, error) {
	if cardID = strings.TrimSpace(cardID); cardID == "" {
		return nil, ErrEmptyID
	}
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	payload, err := s.api.Get(ctx, resource(pathCreditCards, cardID)+"/invoice", url.Values{"month": {month}})
	if err != nil {
		return nil, err
	}
	return models.NormalizeCreditInvoice(payload), nil
}

// Forecast lists the next n months of a card; n == 0 means
// DefaultForecastMonths.
func (s *creditService) Forecast(ctx context.Context, cardID string, n int) ([]models.CreditForecastItem, error) {
	if cardID = strings.TrimSpace(cardID); cardID == "" {
		return nil, ErrEmptyID
	}
	if n == 0 {
		n = DefaultForecastMonths
	}
	if n < 0 {
		return nil, ErrInvalidForecastLen
	}
	payload, err := s.api.Get(ctx, resource(pathCreditCards, cardID)+"/forecast", url.Values{"months": {strconv.Itoa(n)}})
	if err != nil {
		return nil, err
	}
	return models.NormalizeCreditForecast(payload), nil
}

func checkMonth(month string) error {
	if !months.Valid(month) {
		return fmt.Errorf("%w: %q", months.ErrInvalidMonth, month)
	}
	return nil
}
