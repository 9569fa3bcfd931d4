package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/romario-developer/despesas-pwa/internal/normalize"
)

type PlanningExtra struct {
	ID          string  `json:"id"`
	Label       string  `json:"label,omitempty"`
	Description string  `json:"description,omitempty"`
	Date        string  `json:"date,omitempty"`
	Amount      float64 `json:"amount"`
}

type PlanningBill struct {
	ID     string  `json:"id"`
	Label  string  `json:"label,omitempty"`
	Name   string  `json:"name,omitempty"`
	Amount float64 `json:"amount"`
	DueDay int     `json:"dueDay,omitempty"`
}

// Planning is the monthly budget: salary and extra income per month and the
// recurring bills.
type Planning struct {
	SalaryByMonth map[string]float64         `json:"salaryByMonth"`
	ExtrasByMonth map[string][]PlanningExtra `json:"extrasByMonth"`
	FixedBills    []PlanningBill             `json:"fixedBills"`
}

func EmptyPlanning() Planning {
	return Planning{
		SalaryByMonth: map[string]float64{},
		ExtrasByMonth: map[string][]PlanningExtra{},
		FixedBills:    []PlanningBill{},
	}
}

// NewID returns a fresh identifier for planning items.
func NewID() string {
	return uuid.NewString()
}

// NormalizePlanning never fails. Items without an id get one from newID
// (NewID when nil); non-numeric amounts become 0.
func NormalizePlanning(v any, newID func() string) Planning {
	if newID == nil {
		newID = NewID
	}
	p := EmptyPlanning()
	m, ok := normalize.Record(v)
	if !ok {
		return p
	}

	if salaries, ok := normalize.Record(m["salaryByMonth"]); ok {
		for k, val := range salaries {
			p.SalaryByMonth[k] = normalize.NumberOr(val, 0)
		}
	}

	if extras, ok := normalize.Record(m["extrasByMonth"]); ok {
		for k, val := range extras {
			arr, _ := val.([]any)
			list := make([]PlanningExtra, 0, len(arr))
			for _, it := range arr {
				em, _ := normalize.Record(it)
				list = append(list, normalizeExtra(em, newID))
			}
			p.ExtrasByMonth[k] = list
		}
	}

	if bills, ok := m["fixedBills"].([]any); ok {
		for _, it := range bills {
			bm, _ := normalize.Record(it)
			p.FixedBills = append(p.FixedBills, normalizeBill(bm, newID))
		}
	}
	return p
}

func normalizeExtra(m map[string]any, newID func() string) PlanningExtra {
	e := PlanningExtra{}
	if id, ok := normalize.ID(m["id"]); ok {
		e.ID = id
	} else {
		e.ID = newID()
	}

	desc, hasDesc := m["description"].(string)
	label, _ := m["label"].(string)
	if strings.TrimSpace(label) == "" {
		label = desc
	}
	e.Label = label
	if hasDesc {
		e.Description = desc
	} else {
		e.Description = label
	}
	e.Date, _ = m["date"].(string)
	e.Amount = normalize.NumberOr(m["amount"], 0)
	return e
}

func normalizeBill(m map[string]any, newID func() string) PlanningBill {
	b := PlanningBill{}
	if id, ok := normalize.ID(m["id"]); ok {
		b.ID = id
	} else {
		b.ID = newID()
	}

	name, hasName := m["name"].(string)
	label, _ := m["label"].(string)
	if strings.TrimSpace(label) == "" {
		label = name
	}
	b.Label = label
	if hasName {
		b.Name = name
	} else {
		b.Name = label
	}
	b.Amount = normalize.NumberOr(m["amount"], 0)
	b.DueDay, _ = normalize.Day(m["dueDay"])
	return b
}

// Clone returns a deep copy.
func (p Planning) Clone() Planning {
	c := EmptyPlanning()
	for k, v := range p.SalaryByMonth {
		c.SalaryByMonth[k] = v
	}
	for k, v := range p.ExtrasByMonth {
		c.ExtrasByMonth[k] = append([]PlanningExtra(nil), v...)
	}
	c.FixedBills = append(c.FixedBills, p.FixedBills...)
	return c
}
