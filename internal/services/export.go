package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/export"
	"github.com/romario-developer/despesas-pwa/internal/logging"
)

const pathExpensesCSV = "/api/admin/exports/expenses.csv"

// ExportError is returned by every failed export. Status is the HTTP status,
// 0 when no response arrived.
type ExportError struct {
	Status  int
	Message string
	Err     error
}

func (e *ExportError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("export failed (%d): %s", e.Status, e.Message)
	}
	return "export failed: " + e.Message
}

func (e *ExportError) Unwrap() error { return e.Err }

// ExportResult describes a stored export.
type ExportResult struct {
	Filename string
	Location string
	Size     int
}

type ExportService interface {
	ExpensesCSV(ctx context.Context, month string) (ExportResult, error)
}

type exportService struct {
	api        API
	tokens     client.TokenSource
	adminToken string
	sink       export.Sink
	logger     logging.Logger
}

// NewExportService builds the CSV exporter. adminToken is sent as
// x-admin-token; when empty the session token is sent instead.
func NewExportService(api API, tokens client.TokenSource, adminToken string, sink export.Sink, logger logging.Logger) ExportService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &exportService{
		api:        api,
		tokens:     tokens,
		adminToken: adminToken,
		sink:       sink,
		logger:     logger.With(logging.FieldComponent, logging.ComponentExport),
	}
}

// ExpensesCSV downloads the month's expenses as CSV and stores them in the
// sink under the server-provided filename (expenses_<month>.csv otherwise).
func (s *exportService) ExpensesCSV(ctx context.Context, month string) (ExportResult, error) {
	if err := checkMonth(month); err != nil {
		return ExportResult{}, err
	}

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	if token == "" {
		return ExportResult{}, ErrNotLoggedIn
	}
	admin := s.adminToken
	if admin == "" {
		admin = token
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("x-admin-token", admin)
	header.Set("Accept", "text/csv")

	resp, err := s.api.Do(ctx, client.Request{
		Method: http.MethodGet,
		Path:   pathExpensesCSV,
		Query:  url.Values{"month": {month}},
		Header: header,
	})
	if err != nil {
		return ExportResult{}, exportFailure(err)
	}

	name := exportFilename(resp.Header.Get("Content-Disposition"), month)
	location, err := s.sink.Put(ctx, name, "text/csv", resp.Body)
	if err != nil {
		return ExportResult{}, &ExportError{Message: err.Error(), Err: err}
	}

	s.logger.Info(ctx, "expenses exported",
		logging.FieldMonth, month,
		"location", location,
		"bytes", len(resp.Body),
	)
	return ExportResult{Filename: name, Location: location, Size: len(resp.Body)}, nil
}

func exportFailure(err error) *ExportError {
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		return &ExportError{Message: err.Error(), Err: err}
	}
	if apiErr.Status == 0 {
		return &ExportError{Message: apiErr.Message, Err: err}
	}

	msg := ""
	if text, ok := apiErr.Payload.(string); ok {
		msg = strings.TrimSpace(text)
	}
	if msg == "" {
		msg = apiErr.Message
	}
	if msg == "" {
		msg = fmt.Sprintf("Erro ao exportar CSV (%d)", apiErr.Status)
	}
	return &ExportError{Status: apiErr.Status, Message: msg, Err: err}
}

func exportFilename(contentDisposition, month string) string {
	fallback := "expenses_" + month + ".csv"
	if contentDisposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(contentDisposition)
	if err != nil {
		return fallback
	}
	name, err := export.SafeName(params["filename"])
	if err != nil {
		return fallback
	}
	return name
}
