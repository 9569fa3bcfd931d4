package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

func (a *App) showDashboard(ctx context.Context, _ []string) error {
	month := a.month(ctx)
	d, ok := a.cachedDashboard(month)
	if !ok {
		var err error
		if d, err = a.svc.Dashboard.Load(ctx, month); err != nil {
			return err
		}
		a.cacheDashboard(month, d)
	}

	s := d.Summary
	a.println(months.Label(month))
	a.printf("Saldo:            %s\n", money.FormatBRL(s.Balance))
	a.printf("Receitas:         %s\n", money.FormatBRL(s.IncomeTotal))
	a.printf("Despesas:         %s\n", money.FormatBRL(s.ExpenseTotal))
	a.printf("  à vista:        %s\n", money.FormatBRL(s.ExpenseCashTotal))
	a.printf("  no crédito:     %s\n", money.FormatBRL(s.ExpenseCreditTotal))

	if len(s.ByCategory) > 0 {
		a.println()
		table(a.out, "CATEGORIA\tTOTAL", categoryRows(s.ByCategory))
	}
	if len(d.Credit) > 0 {
		a.println()
		a.printCredit(d)
	}
	return nil
}

func (a *App) showSummary(ctx context.Context, _ []string) error {
	month := a.month(ctx)
	s, err := a.svc.Dashboard.LegacySummary(ctx, month)
	if err != nil {
		return err
	}

	a.printf("%s: total %s\n", months.Label(month), money.FormatBRL(s.Total))
	if len(s.ByCategory) > 0 {
		a.println()
		table(a.out, "CATEGORIA\tTOTAL", categoryRows(s.ByCategory))
	}
	if len(s.ByDay) > 0 {
		rows := make([]string, 0, len(s.ByDay))
		for _, d := range s.ByDay {
			rows = append(rows, displayDate(d.Date)+"\t"+money.FormatBRL(d.Total))
		}
		a.println()
		table(a.out, "DIA\tTOTAL", rows)
	}
	return nil
}

func (a *App) showCredit(ctx context.Context, _ []string) error {
	month := a.month(ctx)
	list, err := a.svc.Credit.Overview(ctx, month)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("Nenhum cartão com fatura em " + months.Label(month) + ".")
		return nil
	}
	a.printCredit(services.Dashboard{Credit: list})
	return nil
}

func (a *App) printCredit(d services.Dashboard) {
	rows := make([]string, 0, len(d.Credit))
	for _, c := range d.Credit {
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
			c.CardID, c.Name, brlPtr(c.InvoiceAmount), displayDate(c.DueDate), brlPtr(c.AvailableLimit)))
	}
	table(a.out, "CARTÃO\tNOME\tFATURA\tVENCIMENTO\tDISPONÍVEL", rows)
}

func (a *App) showInvoice(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do cartão")
	if err != nil {
		return err
	}
	month := a.month(ctx)
	items, err := a.svc.Credit.Invoice(ctx, id, month)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("Fatura vazia em " + months.Label(month) + ".")
		return nil
	}

	rows := make([]string, 0, len(items))
	amounts := make([]float64, 0, len(items))
	for _, it := range items {
		parcel := ""
		if it.InstallmentTotal > 1 {
			parcel = fmt.Sprintf("%d/%d", it.InstallmentCurrent, it.InstallmentTotal)
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s", it.Description, orDash(parcel), money.FormatBRL(it.Amount)))
		amounts = append(amounts, it.Amount)
	}
	table(a.out, "DESCRIÇÃO\tPARCELA\tVALOR", rows)
	a.printf("Total %s\n", money.FormatBRL(money.Sum(amounts...)))
	return nil
}

func (a *App) showForecast(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do cartão")
	if err != nil {
		return err
	}
	n := 0
	if len(args) > 1 {
		if n, err = strconv.Atoi(args[1]); err != nil {
			return services.ErrInvalidForecastLen
		}
	}

	items, err := a.svc.Credit.Forecast(ctx, id, n)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		a.println("Sem previsão.")
		return nil
	}
	rows := make([]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, months.Label(it.Month)+"\t"+money.FormatBRL(it.Amount))
	}
	table(a.out, "MÊS\tPREVISTO", rows)
	return nil
}
