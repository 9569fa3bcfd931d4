package services

import (
	"context"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const pathQuickEntry = "/api/quick-entry"

// QuickEntryService turns free text such as "mercado 50" into an entry on
// the backend.
type QuickEntryService interface {
	Create(ctx context.Context, text string) (models.QuickEntryResult, error)
}

type quickEntryService struct {
	api      API
	notifier events.Notifier
	logger   logging.Logger
}

func NewQuickEntryService(api API, notifier events.Notifier, logger logging.Logger) QuickEntryService {
	if notifier == nil {
		notifier = events.Nop
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &quickEntryService{api: api, notifier: notifier, logger: logger}
}

func (s *quickEntryService) Create(ctx context.Context, text string) (models.QuickEntryResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.QuickEntryResult{}, ErrEmptyText
	}

	payload, err := s.api.Post(ctx, pathQuickEntry, map[string]string{"text": text})
	if err != nil {
		return models.QuickEntryResult{}, err
	}
	notifyChanged(ctx, s.notifier, s.logger, "quick-entry", "")
	return models.NormalizeQuickEntry(payload), nil
}
