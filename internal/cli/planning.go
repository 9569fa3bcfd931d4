package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
)

func (a *App) showPlanning(ctx context.Context, _ []string) error {
	month := a.month(ctx)
	totals, err := a.svc.Planning.MonthTotals(ctx, month)
	if err != nil {
		return err
	}
	p, err := a.svc.Planning.Local(ctx)
	if err != nil {
		return err
	}

	a.println("Planejamento de " + months.Label(month))
	a.printf("Salário:       %s\n", money.FormatBRL(totals.Salary))
	a.printf("Extras:        %s\n", money.FormatBRL(totals.Extras))
	a.printf("Contas fixas:  %s\n", money.FormatBRL(totals.Bills))
	a.printf("Sobra:         %s\n", money.FormatBRL(totals.Balance))

	if extras := p.ExtrasByMonth[month]; len(extras) > 0 {
		rows := make([]string, 0, len(extras))
		for _, e := range extras {
			rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s", e.ID, orDash(e.Label), displayDate(e.Date), money.FormatBRL(e.Amount)))
		}
		a.println()
		table(a.out, "ID\tRENDA EXTRA\tDATA\tVALOR", rows)
	}
	if len(p.FixedBills) > 0 {
		rows := make([]string, 0, len(p.FixedBills))
		for _, b := range p.FixedBills {
			rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s", b.ID, orDash(b.Label), day(b.DueDay), money.FormatBRL(b.Amount)))
		}
		a.println()
		table(a.out, "ID\tCONTA FIXA\tVENCE\tVALOR", rows)
	}
	return nil
}

func (a *App) setSalary(ctx context.Context, args []string) error {
	var (
		amount float64
		err    error
	)
	if len(args) > 0 {
		amount, err = money.ParseFloat(strings.Join(args, ""))
	} else {
		amount, err = GetAmount(a.reader, "Salário", 0, false, a.out)
	}
	if err != nil {
		return err
	}

	month := a.month(ctx)
	if _, err := a.svc.Planning.SetSalary(ctx, month, amount); err != nil {
		return err
	}
	a.printf("Salário de %s: %s\n", months.Label(month), money.FormatBRL(amount))
	return nil
}

func (a *App) addExtra(ctx context.Context, _ []string) error {
	var (
		e   models.PlanningExtra
		err error
	)
	if e.Description, err = GetSimpleText(a.reader, "Descrição", a.out); err != nil {
		return err
	}
	if e.Amount, err = GetAmount(a.reader, "Valor", 0, false, a.out); err != nil {
		return err
	}
	if e.Date, err = GetSimpleText(a.reader, "Data (AAAA-MM-DD, opcional)", a.out); err != nil {
		return err
	}

	p, err := a.svc.Planning.AddExtra(ctx, a.month(ctx), e)
	if err != nil {
		return err
	}
	list := p.ExtrasByMonth[a.month(ctx)]
	a.printf("Renda extra adicionada (%s).\n", list[len(list)-1].ID)
	return nil
}

func (a *App) deleteExtra(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id da renda extra")
	if err != nil {
		return err
	}
	if _, err := a.svc.Planning.DeleteExtra(ctx, a.month(ctx), id); err != nil {
		return err
	}
	a.println("Renda extra apagada.")
	return nil
}

func (a *App) addBill(ctx context.Context, _ []string) error {
	var (
		b   models.PlanningBill
		err error
	)
	if b.Name, err = GetSimpleText(a.reader, "Nome", a.out); err != nil {
		return err
	}
	if b.Amount, err = GetAmount(a.reader, "Valor", 0, false, a.out); err != nil {
		return err
	}
	if b.DueDay, err = a.askDay("Dia de vencimento (opcional)"); err != nil {
		return err
	}

	p, err := a.svc.Planning.AddFixedBill(ctx, b)
	if err != nil {
		return err
	}
	a.printf("Conta fixa adicionada (%s).\n", p.FixedBills[len(p.FixedBills)-1].ID)
	return nil
}

func (a *App) deleteBill(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id da conta fixa")
	if err != nil {
		return err
	}
	if _, err := a.svc.Planning.DeleteFixedBill(ctx, id); err != nil {
		return err
	}
	a.println("Conta fixa apagada.")
	return nil
}

func (a *App) pullPlanning(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Substituir o planejamento local pelo do servidor?", a.out)
	if err != nil || !ok {
		return err
	}
	if _, err := a.svc.Planning.Pull(ctx); err != nil {
		return err
	}
	a.println("Planejamento atualizado a partir do servidor.")
	return nil
}

func (a *App) pushPlanning(ctx context.Context, _ []string) error {
	if _, err := a.svc.Planning.Push(ctx); err != nil {
		return err
	}
	a.println("Planejamento enviado ao servidor.")
	return nil
}
