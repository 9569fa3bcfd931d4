package models

import "github.com/romario-developer/despesas-pwa/internal/normalize"

var creditWrappers = []string{"data", "items", "cards", "invoices", "forecast"}

// CreditOverviewCard is a card's position for one month. Unknown amounts
// are nil.
type CreditOverviewCard struct {
	CardID         string   `json:"cardId"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand,omitempty"`
	InvoiceAmount  *float64 `json:"invoiceAmount,omitempty"`
	ClosingDate    string   `json:"closingDate,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	Limit          *float64 `json:"limit,omitempty"`
	AvailableLimit *float64 `json:"availableLimit,omitempty"`
}

func NormalizeCreditOverviewCard(v any) (CreditOverviewCard, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return CreditOverviewCard{}, false
	}
	id, ok := normalize.FirstString(m, "cardId", "id", "card", "cardIdRaw", "card_id")
	if !ok {
		return CreditOverviewCard{}, false
	}
	name, ok := normalize.FirstString(m, "name", "cardName", "label", "brand")
	if !ok {
		return CreditOverviewCard{}, false
	}

	c := CreditOverviewCard{CardID: id, Name: name}
	c.Brand, _ = normalize.String(m["brand"])
	c.InvoiceAmount = normalize.Float(m, "invoiceAmount", "invoice_total", "total", "amount")
	c.ClosingDate, _ = normalize.FirstString(m, "closingDate", "closing_day")
	c.DueDate, _ = normalize.FirstString(m, "dueDate", "due_day")
	c.Limit = normalize.Float(m, "limit", "creditLimit", "credit_limit")
	c.AvailableLimit = normalize.Float(m, "availableLimit", "available_limit", "available", "limitAvailable")
	return c, true
}

func NormalizeCreditOverview(payload any) []CreditOverviewCard {
	items := normalize.List(payload, creditWrappers...)
	out := make([]CreditOverviewCard, 0, len(items))
	for _, it := range items {
		if c, ok := NormalizeCreditOverviewCard(it); ok {
			out = append(out, c)
		}
	}
	return out
}

// CreditInvoiceItem is one line of a card invoice. Installment numbers are
// 0 when unknown.
type CreditInvoiceItem struct {
	ID                 string  `json:"id"`
	Description        string  `json:"description"`
	Amount             float64 `json:"amount"`
	InstallmentCurrent int     `json:"installmentCurrent,omitempty"`
	InstallmentTotal   int     `json:"installmentTotal,omitempty"`
}

// NormalizeCreditInvoiceItem requires a description and an amount. The id
// falls back to the description.
func NormalizeCreditInvoiceItem(v any) (CreditInvoiceItem, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return CreditInvoiceItem{}, false
	}
	desc, ok := normalize.FirstString(m, "description", "title", "name")
	if !ok {
		return CreditInvoiceItem{}, false
	}
	amount, ok := normalize.FirstNumber(m, "amount", "value", "invoiceAmount", "total")
	if !ok {
		return CreditInvoiceItem{}, false
	}

	it := CreditInvoiceItem{Description: desc, Amount: amount}
	it.ID, ok = normalize.FirstString(m, "id", "lineId", "description", "item_id")
	if !ok {
		it.ID = desc
	}

	nested, _ := normalize.Record(m["installment"])
	if f, ok := firstNumber(m["installmentCurrent"], nested["current"], nested["index"],
		m["installment_index"], m["installment_number"]); ok {
		it.InstallmentCurrent = int(f)
	}
	if f, ok := firstNumber(m["installmentTotal"], nested["total"], nested["count"],
		m["installment_count"], m["installment_total"]); ok {
		it.InstallmentTotal = int(f)
	}
	return it, true
}

func firstNumber(values ...any) (float64, bool) {
	for _, v := range values {
		if f, ok := normalize.Number(v); ok {
			return f, true
		}
	}
	return 0, false
}

func NormalizeCreditInvoice(payload any) []CreditInvoiceItem {
	items := normalize.List(payload, creditWrappers...)
	out := make([]CreditInvoiceItem, 0, len(items))
	for _, it := range items {
		if item, ok := NormalizeCreditInvoiceItem(it); ok {
			out = append(out, item)
		}
	}
	return out
}

type CreditForecastItem struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

func NormalizeCreditForecastItem(v any) (CreditForecastItem, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return CreditForecastItem{}, false
	}
	month, ok := normalize.FirstString(m, "month", "label", "name")
	if !ok {
		return CreditForecastItem{}, false
	}
	amount, ok := normalize.FirstNumber(m, "amount", "value", "total")
	if !ok {
		return CreditForecastItem{}, false
	}
	return CreditForecastItem{Month: month, Amount: amount}, true
}

func NormalizeCreditForecast(payload any) []CreditForecastItem {
	items := normalize.List(payload, creditWrappers...)
	out := make([]CreditForecastItem, 0, len(items))
	for _, it := range items {
		if f, ok := NormalizeCreditForecastItem(it); ok {
			out = append(out, f)
		}
	}
	return out
}
