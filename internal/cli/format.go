package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

var errorTexts = []struct {
	err  error
	text string
}{
	{services.ErrNotLoggedIn, "Você não está logado."},
	{services.ErrPasswordRequired, "Informe a senha."},
	{services.ErrPasswordTooShort, fmt.Sprintf("A nova senha precisa ter pelo menos %d caracteres.", services.MinPasswordLength)},
	{services.ErrSamePassword, "A nova senha deve ser diferente da atual."},
	{services.ErrEmptyID, "Informe o id."},
	{services.ErrItemNotFound, "Item não encontrado."},
	{services.ErrEmptyText, "Digite um texto."},
	{services.ErrInvalidForecastLen, "Número de meses inválido."},
	{services.ErrInvalidAmount, "Informe um valor maior que zero."},
	{services.ErrInvalidDate, "Data inválida, use AAAA-MM-DD."},
	{months.ErrInvalidMonth, "Mês inválido, use AAAA-MM."},
	{money.ErrInvalidAmount, "Valor inválido, use por exemplo 1.234,56."},
}

// describe turns err into the text shown to the user.
func describe(err error) string {
	var exportErr *services.ExportError
	if errors.As(err, &exportErr) {
		return exportErr.Message
	}
	for _, t := range errorTexts {
		if errors.Is(err, t.err) {
			return t.text
		}
	}
	return client.Message(err)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func brlPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return money.FormatBRL(*v)
}

// displayDate renders "2024-03-05..." as "05/03/2024".
func displayDate(s string) string {
	if len(s) < 10 || s[4] != '-' || s[7] != '-' {
		return orDash(s)
	}
	return s[8:10] + "/" + s[5:7] + "/" + s[:4]
}

// table writes tab-separated rows with aligned columns.
func table(w io.Writer, header string, rows []string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		fmt.Fprintln(tw, r)
	}
	_ = tw.Flush()
}

func entryRow(e models.Entry) string {
	return strings.Join([]string{
		e.ID,
		displayDate(e.Date),
		e.Description,
		orDash(e.Category),
		orDash(models.PaymentMethodLabel(e.PaymentMethod)),
		money.FormatBRL(e.Amount),
	}, "\t")
}

func categoryRows(totals []models.CategoryTotal) []string {
	rows := make([]string, 0, len(totals))
	for _, c := range totals {
		rows = append(rows, c.Category+"\t"+money.FormatBRL(c.Total))
	}
	return rows
}
