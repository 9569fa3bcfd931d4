package models

import (
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/normalize"
)

// Canonical card brands.
const (
	BrandVisa       = "VISA"
	BrandMastercard = "MASTERCARD"
	BrandElo        = "ELO"
	BrandAmex       = "AMEX"
	BrandOther      = "OTHER"
)

var brandAliases = map[string]string{
	"VISA":             BrandVisa,
	"MASTERCARD":       BrandMastercard,
	"MASTER CARD":      BrandMastercard,
	"MASTER":           BrandMastercard,
	"ELO":              BrandElo,
	"AMEX":             BrandAmex,
	"AMERICAN EXPRESS": BrandAmex,
	"AMERICANEXPRESS":  BrandAmex,
	"OTHER":            BrandOther,
}

// NormalizeBrand maps brand spellings to their canonical name. Unknown
// brands come back upper-cased without spaces; blank gives "".
func NormalizeBrand(brand string) string {
	upper := strings.ToUpper(strings.TrimSpace(brand))
	if upper == "" {
		return ""
	}
	compact := strings.Join(strings.Fields(upper), "")
	if b, ok := brandAliases[upper]; ok {
		return b
	}
	if b, ok := brandAliases[compact]; ok {
		return b
	}
	return compact
}

type CreditCard struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Brand      string  `json:"brand,omitempty"`
	Limit      float64 `json:"limit"`
	ClosingDay int     `json:"closingDay,omitempty"`
	DueDay     int     `json:"dueDay,omitempty"`
	Color      string  `json:"color,omitempty"`
	TextColor  string  `json:"textColor,omitempty"`
}

// CardPayload is the body of card create and update calls.
type CardPayload struct {
	Name       string  `json:"name"`
	Brand      string  `json:"brand,omitempty"`
	Limit      float64 `json:"limit"`
	ClosingDay int     `json:"closingDay,omitempty"`
	DueDay     int     `json:"dueDay,omitempty"`
	Color      string  `json:"color,omitempty"`
}

// Normalized trims the text fields and canonicalises the brand.
func (p CardPayload) Normalized() CardPayload {
	return CardPayload{
		Name:       strings.TrimSpace(p.Name),
		Brand:      NormalizeBrand(p.Brand),
		Limit:      p.Limit,
		ClosingDay: p.ClosingDay,
		DueDay:     p.DueDay,
		Color:      strings.TrimSpace(p.Color),
	}
}

// NormalizeCard requires an id (string or number) and a non-blank name.
func NormalizeCard(v any) (CreditCard, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return CreditCard{}, false
	}
	id, ok := normalize.FirstID(m, "id", "_id")
	if !ok {
		return CreditCard{}, false
	}
	name, ok := normalize.Text(m["name"])
	if !ok {
		return CreditCard{}, false
	}

	c := CreditCard{ID: id, Name: name}
	if b, ok := normalize.Text(m["brand"]); ok {
		c.Brand = b
	}
	c.Limit, _ = normalize.FirstNumber(m, "limit", "creditLimit", "credit_limit")
	c.ClosingDay, _ = normalize.FirstDay(m, "closingDay", "closingDate", "closing_day")
	c.DueDay, _ = normalize.FirstDay(m, "dueDay", "dueDate", "due_day")
	c.Color, _ = normalize.Text(m["color"])
	c.TextColor, _ = normalize.Text(m["textColor"])
	return c, true
}

func NormalizeCards(payload any) []CreditCard {
	items := normalize.List(payload, "data", "items", "cards")
	out := make([]CreditCard, 0, len(items))
	for _, it := range items {
		if c, ok := NormalizeCard(it); ok {
			out = append(out, c)
		}
	}
	return out
}
