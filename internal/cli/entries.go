package cli

import (
	"context"
	"strings"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

// argOrAsk returns the first argument, or asks for it.
func (a *App) argOrAsk(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return GetSimpleText(a.reader, prompt, a.out)
}

func (a *App) listEntries(ctx context.Context, args []string) error {
	month := a.month(ctx)
	from, to, err := months.ToRange(month)
	if err != nil {
		return err
	}

	list, err := a.svc.Entries.List(ctx, services.EntryFilter{From: from, To: to, Q: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.println("Nenhum lançamento em " + months.Label(month) + ".")
		return nil
	}

	rows := make([]string, 0, len(list))
	amounts := make([]float64, 0, len(list))
	for _, e := range list {
		rows = append(rows, entryRow(e))
		amounts = append(amounts, e.Amount)
	}
	table(a.out, "ID\tDATA\tDESCRIÇÃO\tCATEGORIA\tPAGAMENTO\tVALOR", rows)
	a.printf("%d lançamento(s), total %s\n", len(list), money.FormatBRL(money.Sum(amounts...)))
	return nil
}

func (a *App) showEntry(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do lançamento")
	if err != nil {
		return err
	}
	e, err := a.svc.Entries.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printf("Id:         %s\n", e.ID)
	a.printf("Descrição:  %s\n", e.Description)
	a.printf("Valor:      %s\n", money.FormatBRL(e.Amount))
	a.printf("Categoria:  %s\n", orDash(e.Category))
	a.printf("Data:       %s\n", displayDate(e.Date))
	a.printf("Pagamento:  %s\n", orDash(models.PaymentMethodLabel(e.PaymentMethod)))
	if e.CardID != "" {
		a.printf("Cartão:     %s\n", e.CardID)
	}
	if e.Source != "" {
		a.printf("Origem:     %s\n", e.Source)
	}
	return nil
}

func (a *App) addEntry(ctx context.Context, _ []string) error {
	p, err := a.askEntry(ctx, models.EntryPayload{
		Date:          a.defaultDate(ctx),
		PaymentMethod: string(models.PaymentPix),
	}, false)
	if err != nil {
		return err
	}

	e, err := a.svc.Entries.Create(ctx, p)
	if err != nil {
		return err
	}
	a.session.Navigator().Navigate(routeEntries)
	a.printf("Lançamento criado (%s).\n", e.ID)
	return nil
}

func (a *App) editEntry(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do lançamento")
	if err != nil {
		return err
	}
	current, err := a.svc.Entries.Get(ctx, id)
	if err != nil {
		return err
	}

	p, err := a.askEntry(ctx, models.EntryPayload{
		Description:   current.Description,
		Amount:        current.Amount,
		Category:      current.Category,
		Date:          current.Date,
		PaymentMethod: current.PaymentMethod,
		CardID:        current.CardID,
		Source:        current.Source,
	}, true)
	if err != nil {
		return err
	}

	if _, err := a.svc.Entries.Update(ctx, id, p); err != nil {
		return err
	}
	a.session.Navigator().Navigate(routeEntries)
	a.println("Lançamento atualizado.")
	return nil
}

func (a *App) deleteEntry(ctx context.Context, args []string) error {
	id, err := a.argOrAsk(args, "Id do lançamento")
	if err != nil {
		return err
	}
	ok, err := Confirm(a.reader, "Apagar o lançamento "+id+"?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Entries.Delete(ctx, id); err != nil {
		return err
	}
	a.println("Lançamento apagado.")
	return nil
}

// askEntry fills an entry form starting from def.
func (a *App) askEntry(ctx context.Context, def models.EntryPayload, editing bool) (models.EntryPayload, error) {
	p := def
	var err error

	if p.Description, err = GetDefault(a.reader, "Descrição", def.Description, a.out); err != nil {
		return p, err
	}
	if p.Amount, err = GetAmount(a.reader, "Valor", def.Amount, editing, a.out); err != nil {
		return p, err
	}
	if p.Category, err = GetDefault(a.reader, "Categoria", def.Category, a.out); err != nil {
		return p, err
	}
	for {
		if p.Date, err = GetDefault(a.reader, "Data (AAAA-MM-DD)", def.Date, a.out); err != nil {
			return p, err
		}
		if _, perr := time.Parse(time.DateOnly, p.Date); perr == nil {
			break
		}
		a.println("Data inválida.")
	}

	method, err := GetDefault(a.reader, "Pagamento (dinheiro, débito, crédito, pix, transferência, outro)", models.PaymentMethodLabel(def.PaymentMethod), a.out)
	if err != nil {
		return p, err
	}
	p.PaymentMethod = method

	p.CardID = ""
	if models.IsCreditPayment(method) {
		if p.CardID, err = a.askCard(ctx, def.CardID); err != nil {
			return p, err
		}
	}
	return p, nil
}

// askCard lets the user pick one of the registered cards.
func (a *App) askCard(ctx context.Context, def string) (string, error) {
	cards, err := a.svc.Cards.List(ctx)
	if err != nil {
		return "", err
	}
	if len(cards) == 0 {
		a.println("Nenhum cartão cadastrado, use 'addcard'.")
		return "", nil
	}
	for _, c := range cards {
		a.printf("  %s  %s\n", c.ID, c.Name)
	}
	if def == "" {
		def = cards[0].ID
	}
	return GetDefault(a.reader, "Cartão", def, a.out)
}

// defaultDate is today when the selected month is the current one, the
// first day of the selected month otherwise.
func (a *App) defaultDate(ctx context.Context) string {
	month := a.month(ctx)
	now := time.Now().In(months.Location(a.tz))
	if months.At(now, now.Location()) == month {
		return now.Format(time.DateOnly)
	}
	return month + "-01"
}
