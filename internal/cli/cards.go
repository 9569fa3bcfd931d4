package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
)

func (a *App) listCards(ctx context.Context, _ []string) error {
	cards, err := a.svc.Cards.List(ctx)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		a.println("Nenhum cartão cadastrado.")
		return nil
	}

	rows := make([]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s",
			c.ID, c.Name, orDash(c.Brand), money.FormatBRL(c.Limit), day(c.ClosingDay), day(c.DueDay)))
	}
	table(a.out, "ID\tNOME\tBANDEIRA\tLIMITE\tFECHA\tVENCE", rows)
	return nil
}

func (a *App) addCard(ctx context.Context, _ []string) error {
	var (
		p   models.CardPayload
		err error
	)
	if p.Name, err = GetSimpleText(a.reader, "Nome", a.out); err != nil {
		return err
	}
	if p.Brand, err = GetSimpleText(a.reader, "Bandeira (visa, mastercard, elo, ...)", a.out); err != nil {
		return err
	}
	if p.Limit, err = GetAmount(a.reader, "Limite", 0, false, a.out); err != nil {
		return err
	}
	if p.ClosingDay, err = a.askDay("Dia de fechamento"); err != nil {
		return err
	}
	if p.DueDay, err = a.askDay("Dia de vencimento"); err != nil {
		return err
	}

	c, err := a.svc.Cards.Create(ctx, p)
	if err != nil {
		return err
	}
	a.printf("Cartão criado (%s).\n", c.ID)
	return nil
}

func (a *App) deleteCard(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do cartão")
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "Apagar o cartão "+id+"?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Cards.Delete(ctx, id); err != nil {
		return err
	}
	a.dropDashboard()
	a.println("Cartão apagado.")
	return nil
}

func (a *App) listInvoices(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do cartão")
	if err != nil {
		return err
	}
	list, err := a.svc.Cards.Invoices(ctx, id)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("Nenhuma fatura.")
		return nil
	}

	rows := make([]string, 0, len(list))
	for _, inv := range list {
		status := orDash(inv.Status)
		if inv.Paid {
			status = "paga"
		}
		rows = append(rows, fmt.Sprintf("%s\t%s\t%s\t%s",
			inv.Month, money.FormatBRL(inv.Total), displayDate(inv.DueDate), status))
	}
	table(a.out, "MÊS\tTOTAL\tVENCIMENTO\tSITUAÇÃO", rows)
	return nil
}

func (a *App) payInvoice(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do cartão")
	if err != nil {
		return err
	}
	amount, err := GetAmount(a.reader, "Valor pago", 0, false, a.out)
	if err != nil {
		return err
	}
	today := time.Now().In(months.Location(a.tz)).Format(time.DateOnly)
	date, err := GetDefault(a.reader, "Data do pagamento (AAAA-MM-DD)", today, a.out)
	if err != nil {
		return err
	}

	if err := a.svc.Cards.PayInvoice(ctx, id, amount, date); err != nil {
		return err
	}
	a.dropDashboard()
	a.println("Fatura paga com sucesso.")
	return nil
}

// askDay reads a day of month; empty means none.
func (a *App) askDay(prompt string) (int, error) {
	for {
		s, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil || s == "" {
			return 0, err
		}
		d, err := strconv.Atoi(s)
		if err == nil && d >= 1 && d <= 31 {
			return d, nil
		}
		a.println("Dia inválido, use 1 a 31.")
	}
}

func day(d int) string {
	if d == 0 {
		return "-"
	}
	return strconv.Itoa(d)
}
