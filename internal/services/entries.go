package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/models"
)

const pathEntries = "/api/entries"

// EntryFilter narrows an entry listing. Empty fields are not sent.
type EntryFilter struct {
	From     string
	To       string
	Category string
	Q        string
}

func (f EntryFilter) query() url.Values {
	q := url.Values{}
	for k, v := range map[string]string{"from": f.From, "to": f.To, "category": f.Category, "q": f.Q} {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	return q
}

// EntryService manages ledger entries. Every successful mutation publishes
// an entries-changed event.
type EntryService interface {
	List(ctx context.Context, f EntryFilter) ([]models.Entry, error)
	Get(ctx context.Context, id string) (models.Entry, error)
	Create(ctx context.Context, p models.EntryPayload) (models.Entry, error)
	Update(ctx context.Context, id string, p models.EntryPayload) (models.Entry, error)
	Delete(ctx context.Context, id string) error
}

type entryService struct {
	api      API
	notifier events.Notifier
	logger   logging.Logger
}

func NewEntryService(api API, notifier events.Notifier, logger logging.Logger) EntryService {
	if notifier == nil {
		notifier = events.Nop
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &entryService{api: api, notifier: notifier, logger: logger}
}

func (s *entryService) List(ctx context.Context, f EntryFilter) ([]models.Entry, error) {
	payload, err := s.api.Get(ctx, pathEntries, f.query())
	if err != nil {
		return nil, err
	}
	return models.NormalizeEntries(payload), nil
}

func (s *entryService) Get(ctx context.Context, id string) (models.Entry, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.Entry{}, ErrEmptyID
	}
	return s.one(ctx, http.MethodGet, resource(pathEntries, id), nil)
}

func (s *entryService) Create(ctx context.Context, p models.EntryPayload) (models.Entry, error) {
	e, err := s.one(ctx, http.MethodPost, pathEntries, p.Normalized())
	if err != nil {
		return models.Entry{}, err
	}
	s.changed(ctx, e.ID)
	return e, nil
}

func (s *entryService) Update(ctx context.Context, id string, p models.EntryPayload) (models.Entry, error) {
	if id = strings.TrimSpace(id); id == "" {
		return models.Entry{}, ErrEmptyID
	}
	e, err := s.one(ctx, http.MethodPut, resource(pathEntries, id), p.Normalized())
	if err != nil {
		return models.Entry{}, err
	}
	s.changed(ctx, e.ID)
	return e, nil
}

func (s *entryService) Delete(ctx context.Context, id string) error {
	if id = strings.TrimSpace(id); id == "" {
		return ErrEmptyID
	}
	if _, err := s.api.Delete(ctx, resource(pathEntries, id)); err != nil {
		return err
	}
	s.changed(ctx, id)
	return nil
}

func (s *entryService) one(ctx context.Context, method, path string, body any) (models.Entry, error) {
	resp, err := s.api.Do(ctx, client.Request{Method: method, Path: path, Body: body})
	if err != nil {
		return models.Entry{}, err
	}
	payload := resp.Payload
	if m, ok := payload.(map[string]any); ok {
		if inner, ok := m["data"].(map[string]any); ok {
			payload = inner
		}
	}
	e, ok := models.NormalizeEntry(payload)
	if !ok {
		return models.Entry{}, client.Unexpected(method, path, resp.Status, resp.Payload)
	}
	return e, nil
}

func (s *entryService) changed(ctx context.Context, id string) {
	notifyChanged(ctx, s.notifier, s.logger, "entries", id)
}

// notifyChanged publishes an entries-changed event. Delivery problems are
// logged and never fail the mutation that caused them.
func notifyChanged(ctx context.Context, n events.Notifier, logger logging.Logger, source, id string) {
	if err := n.Notify(ctx, events.NewEntriesChanged(source, id)); err != nil {
		logger.Warn(ctx, "entries-changed notification failed",
			logging.FieldComponent, logging.ComponentEvents,
			logging.FieldError, err,
		)
	}
}
