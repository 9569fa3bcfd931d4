package models

import "github.com/romario-developer/despesas-pwa/internal/normalize"

// AuthResponse is the login reply.
type AuthResponse struct {
	Token              string `json:"token"`
	MustChangePassword bool   `json:"mustChangePassword"`
}

// NormalizeAuthResponse requires a token.
func NormalizeAuthResponse(v any) (AuthResponse, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return AuthResponse{}, false
	}
	token, ok := normalize.FirstText(m, "token", "accessToken", "access_token")
	if !ok {
		return AuthResponse{}, false
	}
	return AuthResponse{
		Token:              token,
		MustChangePassword: normalize.Truthy(m["mustChangePassword"]),
	}, true
}

type UserMe struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	TelegramChatID string `json:"telegramChatId,omitempty"`
	TelegramID     string `json:"telegramId,omitempty"`
}

func NormalizeUserMe(v any) UserMe {
	m, _ := normalize.Record(v)
	u := UserMe{}
	u.Name, _ = normalize.Text(m["name"])
	u.Email, _ = normalize.Text(m["email"])
	u.TelegramChatID, _ = normalize.ID(m["telegramChatId"])
	u.TelegramID, _ = normalize.ID(m["telegramId"])
	return u
}

type QuickEntryResult struct {
	Description string   `json:"description,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
}

// NormalizeQuickEntry reads the created entry from "entry", "data" or the
// payload itself.
func NormalizeQuickEntry(v any) QuickEntryResult {
	m, ok := normalize.Record(v)
	if !ok {
		return QuickEntryResult{}
	}
	if normalize.Truthy(m["entry"]) {
		m, _ = normalize.Record(m["entry"])
	} else if normalize.Truthy(m["data"]) {
		m, _ = normalize.Record(m["data"])
	}

	r := QuickEntryResult{}
	r.Description, _ = normalize.Text(m["description"])
	r.Amount = normalize.Float(m, "amount")
	return r
}

type TelegramStatus struct {
	Connected      bool   `json:"connected"`
	TelegramChatID string `json:"telegramChatId,omitempty"`
}

func NormalizeTelegramStatus(v any) TelegramStatus {
	m, _ := normalize.Record(v)
	s := TelegramStatus{Connected: normalize.Truthy(m["connected"])}
	s.TelegramChatID, _ = normalize.String(m["telegramChatId"])
	return s
}

type TelegramLinkCode struct {
	Code      string `json:"code"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// NormalizeTelegramLinkCode requires a code.
func NormalizeTelegramLinkCode(v any) (TelegramLinkCode, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return TelegramLinkCode{}, false
	}
	code, ok := normalize.String(m["code"])
	if !ok {
		return TelegramLinkCode{}, false
	}
	lc := TelegramLinkCode{Code: code}
	lc.ExpiresAt, _ = normalize.Text(m["expiresAt"])
	return lc, true
}

type AssistantAction struct {
	Type     string `json:"type"`
	Entity   string `json:"entity"`
	EntityID string `json:"entityId,omitempty"`
	// Summary is either a string or an object of fields.
	Summary any `json:"summary,omitempty"`
}

type AssistantResponse struct {
	ConversationID   string            `json:"conversationId"`
	AssistantMessage string            `json:"assistantMessage"`
	Actions          []AssistantAction `json:"actions"`
	Suggestions      []string          `json:"suggestions,omitempty"`
}

func NormalizeAssistantResponse(v any) AssistantResponse {
	m, _ := normalize.Record(v)
	r := AssistantResponse{Actions: []AssistantAction{}}
	r.ConversationID, _ = normalize.ID(m["conversationId"])
	r.AssistantMessage, _ = normalize.Text(m["assistantMessage"])

	if arr, ok := m["actions"].([]any); ok {
		for _, it := range arr {
			am, ok := normalize.Record(it)
			if !ok {
				continue
			}
			a := AssistantAction{Summary: am["summary"]}
			a.Type, _ = normalize.Text(am["type"])
			a.Entity, _ = normalize.Text(am["entity"])
			a.EntityID, _ = normalize.ID(am["entityId"])
			r.Actions = append(r.Actions, a)
		}
	}

	if arr, ok := m["suggestions"].([]any); ok {
		for _, it := range arr {
			if s, ok := normalize.Text(it); ok {
				r.Suggestions = append(r.Suggestions, s)
			}
		}
	}
	return r
}
