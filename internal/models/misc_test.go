package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAuthResponse(t *testing.T) {
	r, ok := NormalizeAuthResponse(decode(t, `{"token": "abc", "mustChangePassword": true}`))
	require.True(t, ok)
	assert.Equal(t, AuthResponse{Token: "abc", MustChangePassword: true}, r)

	r, ok = NormalizeAuthResponse(decode(t, `{"accessToken": "xyz"}`))
	require.True(t, ok)
	assert.Equal(t, "xyz", r.Token)
	assert.False(t, r.MustChangePassword)

	_, ok = NormalizeAuthResponse(decode(t, `{"token": ""}`))
	assert.False(t, ok)
}

func TestNormalizeUserMe(t *testing.T) {
	u := NormalizeUserMe(decode(t, `{"name": " Ana ", "email": "", "telegramChatId": 123, "telegramId": " t9 "}`))
	assert.Equal(t, UserMe{Name: "Ana", TelegramChatID: "123", TelegramID: "t9"}, u)
	assert.Equal(t, UserMe{}, NormalizeUserMe(nil))
}

func TestNormalizeQuickEntry(t *testing.T) {
	r := NormalizeQuickEntry(decode(t, `{"entry": {"description": " Café ", "amount": "7.5"}}`))
	assert.Equal(t, "Café", r.Description)
	require.NotNil(t, r.Amount)
	assert.Equal(t, 7.5, *r.Amount)

	r = NormalizeQuickEntry(decode(t, `{"data": {"description": "Uber"}}`))
	assert.Equal(t, "Uber", r.Description)
	assert.Nil(t, r.Amount)

	r = NormalizeQuickEntry(decode(t, `{"description": "Top", "amount": 3}`))
	assert.Equal(t, "Top", r.Description)

	assert.Equal(t, QuickEntryResult{}, NormalizeQuickEntry(nil))
}

func TestNormalizeTelegram(t *testing.T) {
	s := NormalizeTelegramStatus(decode(t, `{"connected": 1, "telegramChatId": 5551}`))
	assert.Equal(t, TelegramStatus{Connected: true, TelegramChatID: "5551"}, s)
	assert.Equal(t, TelegramStatus{}, NormalizeTelegramStatus(decode(t, `{"connected": null}`)))

	lc, ok := NormalizeTelegramLinkCode(decode(t, `{"code": "AB12", "expiresAt": "2024-05-01T10:00:00Z"}`))
	require.True(t, ok)
	assert.Equal(t, TelegramLinkCode{Code: "AB12", ExpiresAt: "2024-05-01T10:00:00Z"}, lc)
	_, ok = NormalizeTelegramLinkCode(decode(t, `{}`))
	assert.False(t, ok)
}

func TestNormalizeAssistantResponse(t *testing.T) {
	r := NormalizeAssistantResponse(decode(t, `{
		"conversationId": "conv-1",
		"assistantMessage": "Feito!",
		"actions": [{"type": "expense_created", "entity": "entry", "entityId": 3, "summary": {"description": "Café", "amount": 7}}, "bad"],
		"suggestions": ["Quanto gastei?", "", 3]
	}`))
	assert.Equal(t, "conv-1", r.ConversationID)
	assert.Equal(t, "Feito!", r.AssistantMessage)
	require.Len(t, r.Actions, 1)
	assert.Equal(t, "expense_created", r.Actions[0].Type)
	assert.Equal(t, "3", r.Actions[0].EntityID)
	assert.Equal(t, []string{"Quanto gastei?"}, r.Suggestions)

	empty := NormalizeAssistantResponse(nil)
	assert.NotNil(t, empty.Actions)
	assert.Empty(t, empty.Suggestions)
}
