package services

import (
	"context"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const (
	pathDashboardSummary = "/api/dashboard/summary"
	pathLegacySummary    = "/api/summary"
)

// Dashboard is everything the dashboard screen shows for one month.
type Dashboard struct {
	Summary models.DashboardSummary
	Cards   []models.CreditCard
	Credit  []models.CreditOverviewCard
}

type DashboardService interface {
	Summary(ctx context.Context, month string) (models.DashboardSummary, error)
	LegacySummary(ctx context.Context, month string) (models.Summary, error)
	Load(ctx context.Context, month string) (Dashboard, error)
}

type dashboardService struct {
	api    API
	cards  CardService
	credit CreditService
}

func NewDashboardService(api API, cards CardService, credit CreditService) DashboardService {
	if cards == nil {
		cards = NewCardService(api)
	}
	if credit == nil {
		credit = NewCreditService(api)
	}
	return &dashboardService{api: api, cards: cards, credit: credit}
}

func (s *dashboardService) Summary(ctx context.Context, month string) (models.DashboardSummary, error) {
	if err := checkMonth(month); err != nil {
		return models.DashboardSummary{}, err
	}
	payload, err := s.api.Get(ctx, pathDashboardSummary, url.Values{"month": {month}})
	if err != nil {
		return models.DashboardSummary{}, err
	}
	return models.NormalizeDashboardSummary(payload, month), nil
}

// LegacySummary reads the older /api/summary shape, which must carry a
// numeric total.
func (s *dashboardService) LegacySummary(ctx context.Context, month string) (models.Summary, error) {
	if err := checkMonth(month); err != nil {
		return models.Summary{}, err
	}
	resp, err := s.api.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   pathLegacySummary,
		Query:  url.Values{"month": {month}},
	})
	if err != nil {
		return models.Summary{}, err
	}
	sum, ok := models.NormalizeSummary(resp.Payload, month)
	if !ok {
		return models.Summary{}, client.Unexpected(http.MethodGet, pathLegacySummary, resp.Status, resp.Payload)
	}
	return sum, nil
}

// Load fetches the summary, the cards and the credit overview concurrently.
// The first failure cancels the other calls and is returned.
func (s *dashboardService) Load(ctx context.Context, month string) (Dashboard, error) {
	if err := checkMonth(month); err != nil {
		return Dashboard{}, err
	}

	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sum, err := s.Summary(gctx, month)
		d.Summary = sum
		return err
	})
	g.Go(func() error {
		cards, err := s.cards.List(gctx)
		d.Cards = cards
		return err
	})
	g.Go(func() error {
		credit, err := s.credit.Overview(gctx, month)
		d.Credit = credit
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}
	return d, nil
}
