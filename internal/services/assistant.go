package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/normalize"
	"github.com/romario-developer/despesas-pwa/internal/storage/kv"
)

const (
	pathAssistantChat = "/api/assistant/chat"

	// KeyConversation holds the assistant conversation id between runs.
	KeyConversation = "assistant_conversation_id"

	AssistantFallbackMessage = "Assistente respondeu em um formato inesperado. Tente novamente."
	AssistantErrorMessage    = "Não consegui falar com o servidor agora. Tente novamente."
)

// DefaultSuggestions are offered until the assistant sends its own.
var DefaultSuggestions = []string{
	"Quanto gastei esse mês?",
	"Desfazer último",
	"Registrar receita",
}

// AssistantReply is one assistant turn ready to display.
type AssistantReply struct {
	ConversationID string
	Message        string
	Actions        []models.AssistantAction
	Summaries      []string
	Suggestions    []string
}

type AssistantService interface {
	Send(ctx context.Context, message string) (AssistantReply, error)
	Reset(ctx context.Context) error
	ConversationID(ctx context.Context) (string, error)
}

type assistantService struct {
	api      API
	repo     kv.Repository
	prefs    *Preferences
	notifier events.Notifier
	logger   logging.Logger
}

func NewAssistantService(api API, db *sql.DB, prefs *Preferences, notifier events.Notifier, logger logging.Logger) AssistantService {
	if notifier == nil {
		notifier = events.Nop
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if prefs == nil {
		prefs = NewPreferences(db, "")
	}
	return &assistantService{
		api:      api,
		repo:     stateRepo(db),
		prefs:    prefs,
		notifier: notifier,
		logger:   logger,
	}
}

type assistantRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	Month          string `json:"month,omitempty"`
}

// Send posts message with the stored conversation id and the selected month.
// The returned conversation id is persisted for the next call. Actions whose
// type starts with "expense_" publish an entries-changed event.
func (s *assistantService) Send(ctx context.Context, message string) (AssistantReply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return AssistantReply{}, ErrEmptyText
	}

	conversationID, err := s.ConversationID(ctx)
	if err != nil {
		return AssistantReply{}, err
	}
	month, err := s.prefs.SelectedMonth(ctx)
	if err != nil {
		return AssistantReply{}, err
	}

	payload, err := s.api.Post(ctx, pathAssistantChat, assistantRequest{
		Message:        message,
		ConversationID: conversationID,
		Month:          month,
	})
	if err != nil {
		return AssistantReply{}, err
	}

	resp := models.NormalizeAssistantResponse(payload)
	if err := kv.SetString(ctx, s.repo, KeyConversation, resp.ConversationID); err != nil {
		return AssistantReply{}, fmt.Errorf("save conversation: %w", err)
	}

	for _, a := range resp.Actions {
		if strings.HasPrefix(a.Type, "expense_") {
			notifyChanged(ctx, s.notifier, s.logger, "assistant", a.EntityID)
			break
		}
	}

	reply := AssistantReply{
		ConversationID: resp.ConversationID,
		Message:        resp.AssistantMessage,
		Actions:        resp.Actions,
		Suggestions:    resp.Suggestions,
	}
	if reply.Message == "" {
		reply.Message = AssistantFallbackMessage
	}
	if reply.Suggestions == nil {
		reply.Suggestions = append([]string(nil), DefaultSuggestions...)
	}
	for _, a := range resp.Actions {
		if line, ok := FormatActionSummary(a); ok {
			reply.Summaries = append(reply.Summaries, line)
		}
	}
	return reply, nil
}

// Reset forgets the conversation so the next Send starts a new one.
func (s *assistantService) Reset(ctx context.Context) error {
	return s.repo.Delete(ctx, KeyConversation)
}

func (s *assistantService) ConversationID(ctx context.Context) (string, error) {
	return kv.GetString(ctx, s.repo, KeyConversation)
}

// AssistantErrorText is the text shown in the chat when Send fails.
func AssistantErrorText(err error) string {
	if msg := strings.TrimSpace(client.Message(err)); msg != "" {
		return msg
	}
	return AssistantErrorMessage
}

// FormatActionSummary renders an action summary as one line. A string
// summary is used as is. An object with a description or an amount becomes a
// "Registrado" line; any other object lists its scalar fields sorted by key.
func FormatActionSummary(a models.AssistantAction) (string, bool) {
	switch v := a.Summary.(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case map[string]any:
		return formatSummaryObject(v)
	default:
		return "", false
	}
}

func formatSummaryObject(m map[string]any) (string, bool) {
	desc, _ := normalize.Text(m["description"])

	var amount string
	switch v := m["amount"].(type) {
	case json.Number, float64:
		if f, ok := normalize.Number(v); ok {
			amount = money.FormatBRL(f)
		}
	case string:
		amount = strings.TrimSpace(v)
	}

	if desc != "" || amount != "" {
		line := "Registrado"
		if desc != "" {
			line += ": " + desc
		}
		if amount != "" {
			line += " — " + amount
		}
		return line, true
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				parts = append(parts, k+": "+s)
			}
		case json.Number:
			parts = append(parts, k+": "+v.String())
		case float64, bool:
			parts = append(parts, fmt.Sprintf("%s: %v", k, v))
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " · "), true
}
