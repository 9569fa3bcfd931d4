package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/dbx"
	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/storage/kv"
)

const (
	pathPlanning = "/api/planning"

	// KeyPlanning holds the local planning snapshot.
	KeyPlanning = "despesas_pwa_planning_v1"
)

// ExtraPatch changes the non-nil fields of an extra income.
type ExtraPatch struct {
	Label       *string
	Description *string
	Date        *string
	Amount      *float64
}

// BillPatch changes the non-nil fields of a fixed bill.
type BillPatch struct {
	Label  *string
	Name   *string
	Amount *float64
	DueDay *int
}

// MonthTotals is the budget of one month.
type MonthTotals struct {
	Month   string  `json:"month"`
	Salary  float64 `json:"salary"`
	Extras  float64 `json:"extras"`
	Bills   float64 `json:"bills"`
	Balance float64 `json:"balance"`
}

// PlanningService keeps the budget plan. Get and Save talk to the backend;
// the remaining operations edit the local snapshot, which Pull and Push
// synchronise with the backend.
type PlanningService interface {
	Get(ctx context.Context) (models.Planning, error)
	Save(ctx context.Context, p models.Planning) (models.Planning, error)

	Local(ctx context.Context) (models.Planning, error)
	SaveLocal(ctx context.Context, p models.Planning) error
	Pull(ctx context.Context) (models.Planning, error)
	Push(ctx context.Context) (models.Planning, error)

	SetSalary(ctx context.Context, month string, amount float64) (models.Planning, error)
	AddExtra(ctx context.Context, month string, extra models.PlanningExtra) (models.Planning, error)
	UpdateExtra(ctx context.Context, month, id string, patch ExtraPatch) (models.Planning, error)
	DeleteExtra(ctx context.Context, month, id string) (models.Planning, error)
	AddFixedBill(ctx context.Context, bill models.PlanningBill) (models.Planning, error)
	UpdateFixedBill(ctx context.Context, id string, patch BillPatch) (models.Planning, error)
	DeleteFixedBill(ctx context.Context, id string) (models.Planning, error)

	MonthTotals(ctx context.Context, month string) (MonthTotals, error)
}

type planningService struct {
	api   API
	db    *sql.DB
	newID func() string

	// serialises read-modify-write cycles on the snapshot
	mu sync.Mutex
}

// NewPlanningService builds the service. newID may be nil (models.NewID).
func NewPlanningService(api API, db *sql.DB, newID func() string) PlanningService {
	if newID == nil {
		newID = models.NewID
	}
	return &planningService{api: api, db: db, newID: newID}
}

func (s *planningService) Get(ctx context.Context) (models.Planning, error) {
	payload, err := s.api.Get(ctx, pathPlanning, nil)
	if err != nil {
		return models.Planning{}, err
	}
	return models.NormalizePlanning(payload, s.newID), nil
}

// Save sends a normalised copy of p and returns what the backend kept.
func (s *planningService) Save(ctx context.Context, p models.Planning) (models.Planning, error) {
	resp, err := s.api.Do(ctx, client.Request{
		Method: http.MethodPut,
		Path:   pathPlanning,
		Body:   normalizeLocal(p, s.newID),
	})
	if err != nil {
		return models.Planning{}, err
	}
	if resp.Payload == nil {
		return models.EmptyPlanning(), nil
	}
	return models.NormalizePlanning(resp.Payload, s.newID), nil
}

func (s *planningService) Local(ctx context.Context) (models.Planning, error) {
	return s.load(ctx, stateRepo(s.db))
}

func (s *planningService) SaveLocal(ctx context.Context, p models.Planning) error {
	return kv.SetJSON(ctx, stateRepo(s.db), KeyPlanning, normalizeLocal(p, s.newID))
}

// Pull replaces the local snapshot with the backend plan.
func (s *planningService) Pull(ctx context.Context) (models.Planning, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return models.Planning{}, err
	}
	if err := s.SaveLocal(ctx, p); err != nil {
		return models.Planning{}, err
	}
	return p, nil
}

// Push sends the local snapshot and stores the backend's answer locally.
func (s *planningService) Push(ctx context.Context) (models.Planning, error) {
	local, err := s.Local(ctx)
	if err != nil {
		return models.Planning{}, err
	}
	saved, err := s.Save(ctx, local)
	if err != nil {
		return models.Planning{}, err
	}
	if err := s.SaveLocal(ctx, saved); err != nil {
		return models.Planning{}, err
	}
	return saved, nil
}

func (s *planningService) SetSalary(ctx context.Context, month string, amount float64) (models.Planning, error) {
	key, err := monthKey(month)
	if err != nil {
		return models.Planning{}, err
	}
	return s.update(ctx, func(p *models.Planning) error {
		p.SalaryByMonth[key] = amount
		return nil
	})
}

func (s *planningService) AddExtra(ctx context.Context, month string, extra models.PlanningExtra) (models.Planning, error) {
	key, err := monthKey(month)
	if err != nil {
		return models.Planning{}, err
	}
	return s.update(ctx, func(p *models.Planning) error {
		extra.ID = s.newID()
		if strings.TrimSpace(extra.Label) == "" {
			extra.Label = extra.Description
		}
		if extra.Description == "" {
			extra.Description = extra.Label
		}
		p.ExtrasByMonth[key] = append(p.ExtrasByMonth[key], extra)
		return nil
	})
}

func (s *planningService) UpdateExtra(ctx context.Context, month, id string, patch ExtraPatch) (models.Planning, error) {
	key, err := monthKey(month)
	if err != nil {
		return models.Planning{}, err
	}
	return s.update(ctx, func(p *models.Planning) error {
		list := p.ExtrasByMonth[key]
		for i := range list {
			if list[i].ID != id {
				continue
			}
			if patch.Label != nil {
				list[i].Label = *patch.Label
			}
			if patch.Description != nil {
				list[i].Description = *patch.Description
			}
			if patch.Date != nil {
				list[i].Date = *patch.Date
			}
			if patch.Amount != nil {
				list[i].Amount = *patch.Amount
			}
			return nil
		}
		return fmt.Errorf("%w: extra %s in %s", ErrItemNotFound, id, key)
	})
}

func (s *planningService) DeleteExtra(ctx context.Context, month, id string) (models.Planning, error) {
	key, err := monthKey(month)
	if err != nil {
		return models.Planning{}, err
	}
	return s.update(ctx, func(p *models.Planning) error {
		list := p.ExtrasByMonth[key]
		kept := make([]models.PlanningExtra, 0, len(list))
		for _, e := range list {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(list) {
			return fmt.Errorf("%w: extra %s in %s", ErrItemNotFound, id, key)
		}
		p.ExtrasByMonth[key] = kept
		return nil
	})
}

func (s *planningService) AddFixedBill(ctx context.Context, bill models.PlanningBill) (models.Planning, error) {
	return s.update(ctx, func(p *models.Planning) error {
		bill.ID = s.newID()
		if strings.TrimSpace(bill.Label) == "" {
			bill.Label = bill.Name
		}
		if bill.Name == "" {
			bill.Name = bill.Label
		}
		p.FixedBills = append(p.FixedBills, bill)
		return nil
	})
}

func (s *planningService) UpdateFixedBill(ctx context.Context, id string, patch BillPatch) (models.Planning, error) {
	return s.update(ctx, func(p *models.Planning) error {
		for i := range p.FixedBills {
			b := &p.FixedBills[i]
			if b.ID != id {
				continue
			}
			if patch.Label != nil {
				b.Label = *patch.Label
			}
			if patch.Name != nil {
				b.Name = *patch.Name
			}
			if patch.Amount != nil {
				b.Amount = *patch.Amount
			}
			if patch.DueDay != nil {
				b.DueDay = *patch.DueDay
			}
			return nil
		}
		return fmt.Errorf("%w: bill %s", ErrItemNotFound, id)
	})
}

func (s *planningService) DeleteFixedBill(ctx context.Context, id string) (models.Planning, error) {
	return s.update(ctx, func(p *models.Planning) error {
		kept := make([]models.PlanningBill, 0, len(p.FixedBills))
		for _, b := range p.FixedBills {
			if b.ID != id {
				kept = append(kept, b)
			}
		}
		if len(kept) == len(p.FixedBills) {
			return fmt.Errorf("%w: bill %s", ErrItemNotFound, id)
		}
		p.FixedBills = kept
		return nil
	})
}

// MonthTotals computes salary + extras - bills for month from the local
// snapshot. Fixed bills apply to every month.
func (s *planningService) MonthTotals(ctx context.Context, month string) (MonthTotals, error) {
	key, err := monthKey(month)
	if err != nil {
		return MonthTotals{}, err
	}
	p, err := s.Local(ctx)
	if err != nil {
		return MonthTotals{}, err
	}

	extras := make([]float64, 0, len(p.ExtrasByMonth[key]))
	for _, e := range p.ExtrasByMonth[key] {
		extras = append(extras, e.Amount)
	}
	bills := make([]float64, 0, len(p.FixedBills))
	for _, b := range p.FixedBills {
		bills = append(bills, b.Amount)
	}

	t := MonthTotals{
		Month:  key,
		Salary: p.SalaryByMonth[key],
		Extras: money.Sum(extras...),
		Bills:  money.Sum(bills...),
	}
	t.Balance = money.Sum(t.Salary, t.Extras, -t.Bills)
	return t, nil
}

func (s *planningService) load(ctx context.Context, repo kv.Repository) (models.Planning, error) {
	var raw any
	ok, err := kv.GetJSON(ctx, repo, KeyPlanning, &raw)
	if err != nil {
		return models.Planning{}, err
	}
	if !ok {
		return models.EmptyPlanning(), nil
	}
	return models.NormalizePlanning(raw, s.newID), nil
}

// update applies fn to the snapshot inside one transaction. Nothing is
// written when fn fails.
func (s *planningService) update(ctx context.Context, fn func(p *models.Planning) error) (models.Planning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out models.Planning
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		p, err := s.load(ctx, repo)
		if err != nil {
			return err
		}
		if err := fn(&p); err != nil {
			return err
		}
		if err := kv.SetJSON(ctx, repo, KeyPlanning, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return models.Planning{}, err
	}
	return out, nil
}

// normalizeLocal fills nil collections and missing ids.
func normalizeLocal(p models.Planning, newID func() string) models.Planning {
	out := p.Clone()
	for k, list := range out.ExtrasByMonth {
		if list == nil {
			list = []models.PlanningExtra{}
		}
		for i := range list {
			if list[i].ID == "" {
				list[i].ID = newID()
			}
		}
		out.ExtrasByMonth[k] = list
	}
	for i := range out.FixedBills {
		if out.FixedBills[i].ID == "" {
			out.FixedBills[i].ID = newID()
		}
	}
	return out
}

func monthKey(month string) (string, error) {
	key := months.Key(month)
	if err := checkMonth(key); err != nil {
		return "", err
	}
	return key, nil
}
