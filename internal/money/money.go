// Package money parses and formats Brazilian real amounts with decimal
// arithmetic.
package money

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

var notAmount = regexp.MustCompile(`[^\d,.\-]`)

// ParseInput reads user input in pt-BR notation: "1.234,56", "R$ 12,5" or
// "12". Dots are thousands separators and the first comma is the decimal
// separator.
func ParseInput(s string) (decimal.Decimal, error) {
	clean := notAmount.ReplaceAllString(s, "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	if clean == "" || clean == "-" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ParseFloat is ParseInput returning a float64.
func ParseFloat(s string) (float64, error) {
	d, err := ParseInput(s)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// FormatBRL renders v as "R$ 1.234,56".
func FormatBRL(v float64) string {
	return FormatDecimal(decimal.NewFromFloat(v))
}

// FormatDecimal renders d as "R$ 1.234,56" (negative: "-R$ 1.234,56").
func FormatDecimal(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	out := "R$ " + b.String() + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatPercent clamps v to [0, 100] and prints it with no decimals when it
// is whole, one otherwise.
func FormatPercent(v float64) string {
	d := decimal.NewFromFloat(v)
	if d.LessThan(decimal.Zero) {
		d = decimal.Zero
	}
	if d.GreaterThan(decimal.NewFromInt(100)) {
		d = decimal.NewFromInt(100)
	}
	if d.IsInteger() {
		return d.StringFixed(0) + "%"
	}
	return d.StringFixed(1) + "%"
}

// Sum adds amounts without float drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}
