package models

import "github.com/romario-developer/despesas-pwa/internal/normalize"

// CardInvoice is one monthly invoice of a card.
type CardInvoice struct {
	ID          string  `json:"id,omitempty"`
	CardID      string  `json:"cardId,omitempty"`
	Month       string  `json:"month"`
	Total       float64 `json:"total"`
	DueDate     string  `json:"dueDate,omitempty"`
	ClosingDate string  `json:"closingDate,omitempty"`
	Status      string  `json:"status,omitempty"`
	Paid        bool    `json:"paid"`
}

func NormalizeInvoice(v any) (CardInvoice, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return CardInvoice{}, false
	}
	month, ok := normalize.FirstString(m, "month", "reference")
	if !ok {
		return CardInvoice{}, false
	}

	inv := CardInvoice{Month: month}
	inv.ID, _ = normalize.FirstID(m, "id", "invoiceId", "_id")
	inv.CardID, _ = normalize.FirstID(m, "cardId", "card_id")
	inv.Total, _ = normalize.FirstNumber(m, "total", "amount", "value")
	inv.DueDate, _ = normalize.FirstString(m, "dueDate", "due_date")
	inv.ClosingDate, _ = normalize.FirstString(m, "closingDate", "closing_date")
	inv.Status, _ = normalize.Text(m["status"])
	inv.Paid = normalize.Truthy(m["paid"]) || inv.Status == "paid"
	return inv, true
}

func NormalizeInvoices(payload any) []CardInvoice {
	items := normalize.List(payload, "data", "items", "invoices")
	out := make([]CardInvoice, 0, len(items))
	for _, it := range items {
		if inv, ok := NormalizeInvoice(it); ok {
			out = append(out, inv)
		}
	}
	return out
}
