package models

import (
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/normalize"
)

type Entry struct {
	ID            string  `json:"id"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	CardID        string  `json:"cardId,omitempty"`
	Source        string  `json:"source,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}

// EntryPayload is the body of entry create and update calls.
type EntryPayload struct {
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Date          string  `json:"date"`
	Source        string  `json:"source,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	CardID        string  `json:"cardId,omitempty"`
}

// Normalized trims text fields and maps the payment method to its
// canonical name when it is recognised.
func (p EntryPayload) Normalized() EntryPayload {
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.Date = strings.TrimSpace(p.Date)
	p.Source = strings.TrimSpace(p.Source)
	p.CardID = strings.TrimSpace(p.CardID)
	if pm, ok := MapPaymentMethod(p.PaymentMethod); ok {
		p.PaymentMethod = string(pm)
	} else {
		p.PaymentMethod = strings.TrimSpace(p.PaymentMethod)
	}
	return p
}

// NormalizeEntry requires an id.
func NormalizeEntry(v any) (Entry, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return Entry{}, false
	}
	id, ok := normalize.FirstID(m, "id", "_id")
	if !ok {
		return Entry{}, false
	}

	e := Entry{ID: id}
	e.Description, _ = normalize.FirstText(m, "description", "title")
	e.Amount, _ = normalize.FirstNumber(m, "amount", "value", "total")
	e.Category, _ = normalize.FirstText(m, "category", "categoryName")
	e.Date, _ = normalize.FirstText(m, "date", "entryDate")
	e.PaymentMethod, _ = normalize.FirstText(m, "paymentMethod", "payment_method")
	e.CardID, _ = normalize.FirstID(m, "cardId", "card_id")
	e.Source, _ = normalize.Text(m["source"])
	e.CreatedAt, _ = normalize.FirstText(m, "createdAt", "created_at")
	e.UpdatedAt, _ = normalize.FirstText(m, "updatedAt", "updated_at")
	return e, true
}

func NormalizeEntries(payload any) []Entry {
	items := normalize.List(payload, "data", "items", "entries")
	out := make([]Entry, 0, len(items))
	for _, it := range items {
		if e, ok := NormalizeEntry(it); ok {
			out = append(out, e)
		}
	}
	return out
}
