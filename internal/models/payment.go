package models

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "Dinheiro"
	PaymentDebit    PaymentMethod = "Debito"
	PaymentCredit   PaymentMethod = "Credito"
	PaymentPix      PaymentMethod = "Pix"
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentOther    PaymentMethod = "Outro"
)

var PaymentMethods = []PaymentMethod{
	PaymentCash, PaymentDebit, PaymentCredit, PaymentPix, PaymentTransfer, PaymentOther,
}

var paymentLabels = map[PaymentMethod]string{
	PaymentCash:     "Dinheiro",
	PaymentDebit:    "Débito",
	PaymentCredit:   "Crédito",
	PaymentPix:      "Pix",
	PaymentTransfer: "Transferência",
	PaymentOther:    "Outro",
}

// paymentKey strips diacritics and keeps only the letters, upper-cased.
func paymentKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(stripped) {
		if r >= 'A' && r <= 'Z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// MapPaymentMethod recognises payment method spellings such as "cartão de
// crédito", "DEBIT" or "pix".
func MapPaymentMethod(s string) (PaymentMethod, bool) {
	key := paymentKey(s)
	switch {
	case key == "":
		return "", false
	case strings.Contains(key, "PIX"):
		return PaymentPix, true
	case strings.Contains(key, "DINHEIRO"):
		return PaymentCash, true
	case strings.Contains(key, "DEBITO"), strings.Contains(key, "DEBIT"):
		return PaymentDebit, true
	case strings.Contains(key, "CREDITO"), strings.Contains(key, "CREDIT"):
		return PaymentCredit, true
	case strings.Contains(key, "TRANSFER"):
		return PaymentTransfer, true
	case strings.Contains(key, "OUTRO"):
		return PaymentOther, true
	}
	return "", false
}

// PaymentMethodLabel returns the display label, the input itself when it is
// not recognised, or "" when it is blank.
func PaymentMethodLabel(s string) string {
	if pm, ok := MapPaymentMethod(s); ok {
		return paymentLabels[pm]
	}
	return strings.TrimSpace(s)
}

func IsCreditPayment(s string) bool {
	key := paymentKey(s)
	return strings.Contains(key, "CREDITO") || strings.Contains(key, "CREDIT")
}
