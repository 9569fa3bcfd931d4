package services

import (
	"context"
	"database/sql"

	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/storage/kv"
)

// Local preference keys.
const (
	KeySelectedMonth = "selectedMonth"
	KeyChatOpen      = "assistant_chat_open"
)

// Preferences are small UI choices kept in the local store.
type Preferences struct {
	repo kv.Repository
	tz   string
}

// NewPreferences binds preferences to db. tz decides the current month when
// none has been selected.
func NewPreferences(db *sql.DB, tz string) *Preferences {
	return &Preferences{repo: stateRepo(db), tz: tz}
}

// SelectedMonth returns the stored month, or the current month in the
// configured timezone when nothing valid is stored.
func (p *Preferences) SelectedMonth(ctx context.Context) (string, error) {
	m, err := kv.GetString(ctx, p.repo, KeySelectedMonth)
	if err != nil {
		return "", err
	}
	if months.Valid(m) {
		return m, nil
	}
	return months.Current(p.tz), nil
}

func (p *Preferences) SetSelectedMonth(ctx context.Context, month string) error {
	if err := checkMonth(month); err != nil {
		return err
	}
	return kv.SetString(ctx, p.repo, KeySelectedMonth, month)
}

func (p *Preferences) ChatOpen(ctx context.Context) (bool, error) {
	return kv.GetBool(ctx, p.repo, KeyChatOpen)
}

func (p *Preferences) SetChatOpen(ctx context.Context, open bool) error {
	return kv.SetBool(ctx, p.repo, KeyChatOpen, open)
}
