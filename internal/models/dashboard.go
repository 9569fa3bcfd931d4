package models

import (
	"sort"

	"github.com/romario-developer/despesas-pwa/internal/normalize"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Color    string  `json:"color,omitempty"`
}

type DashboardSummary struct {
	Month              string          `json:"month"`
	Balance            float64         `json:"balance"`
	IncomeTotal        float64         `json:"incomeTotal"`
	ExpenseTotal       float64         `json:"expenseTotal"`
	ExpenseCashTotal   float64         `json:"expenseCashTotal"`
	ExpenseCreditTotal float64         `json:"expenseCreditTotal"`
	ByCategory         []CategoryTotal `json:"byCategory"`
}

// NormalizeDashboardSummary never fails: missing totals are 0 and the month
// falls back to the one requested.
func NormalizeDashboardSummary(v any, month string) DashboardSummary {
	m, _ := normalize.Record(v)

	s := DashboardSummary{Month: month}
	if mm, ok := normalize.Text(m["month"]); ok {
		s.Month = mm
	}
	s.Balance, _ = normalize.Number(m["balance"])
	s.IncomeTotal, _ = normalize.Number(m["incomeTotal"])
	s.ExpenseTotal, _ = normalize.Number(m["expenseTotal"])
	s.ExpenseCashTotal, _ = normalize.FirstNumber(m, "expenseCashTotal", "expense_cash_total")
	s.ExpenseCreditTotal, _ = normalize.FirstNumber(m, "expenseCreditTotal", "expense_credit_total")
	s.ByCategory = normalizeCategories(m["byCategory"])
	return s
}

// normalizeCategories accepts a list of {categoryName|category|name,
// total|amount, color} or a {category: total} map; map keys are sorted.
func normalizeCategories(v any) []CategoryTotal {
	out := make([]CategoryTotal, 0)

	if arr, ok := v.([]any); ok {
		for _, it := range arr {
			m, ok := normalize.Record(it)
			if !ok {
				continue
			}
			label, ok := normalize.FirstText(m, "categoryName", "category", "name")
			if !ok {
				continue
			}
			c := CategoryTotal{Category: label}
			c.Total, _ = normalize.FirstNumber(m, "total", "amount")
			c.Color, _ = normalize.Text(m["color"])
			out = append(out, c)
		}
		return out
	}

	if m, ok := normalize.Record(v); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			if k != "" {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, CategoryTotal{Category: k, Total: normalize.NumberOr(m[k], 0)})
		}
	}
	return out
}

type DayTotal struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}

// Summary is the legacy /api/summary report.
type Summary struct {
	Month      string          `json:"month"`
	Total      float64         `json:"total"`
	ByCategory []CategoryTotal `json:"totalPorCategoria"`
	ByDay      []DayTotal      `json:"totalPorDia"`
}

// NormalizeSummary requires a numeric total.
func NormalizeSummary(v any, month string) (Summary, bool) {
	m, ok := normalize.Record(v)
	if !ok {
		return Summary{}, false
	}
	total, ok := normalize.Number(m["total"])
	if !ok {
		return Summary{}, false
	}

	s := Summary{Month: month, Total: total}
	if mm, ok := normalize.Text(m["month"]); ok {
		s.Month = mm
	}

	cats := m["totalPorCategoria"]
	if cats == nil {
		cats = m["byCategory"]
	}
	s.ByCategory = normalizeCategories(cats)

	days := m["totalPorDia"]
	if days == nil {
		days = m["byDay"]
	}
	s.ByDay = normalizeDays(days)
	return s, true
}

func normalizeDays(v any) []DayTotal {
	out := make([]DayTotal, 0)
	if arr, ok := v.([]any); ok {
		for _, it := range arr {
			m, ok := normalize.Record(it)
			if !ok {
				continue
			}
			date, ok := normalize.FirstText(m, "date", "day")
			if !ok {
				continue
			}
			total, _ := normalize.FirstNumber(m, "total", "amount")
			out = append(out, DayTotal{Date: date, Total: total})
		}
		return out
	}

	if m, ok := normalize.Record(v); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, DayTotal{Date: k, Total: normalize.NumberOr(m[k], 0)})
		}
	}
	return out
}
