package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/money"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

func (a *App) quickEntry(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if text == "" {
		var err error
		if text, err = GetSimpleText(a.reader, "Texto (ex.: mercado 50)", a.out); err != nil {
			return err
		}
	}

	r, err := a.svc.QuickEntry.Create(ctx, text)
	if err != nil {
		return err
	}
	switch {
	case r.Description != "" && r.Amount != nil:
		a.printf("Registrado: %s — %s\n", r.Description, money.FormatBRL(*r.Amount))
	case r.Description != "":
		a.printf("Registrado: %s\n", r.Description)
	default:
		a.println("Lançamento registrado.")
	}
	return nil
}

// chat sends one message when given, otherwise keeps a conversation going
// until an empty line.
func (a *App) chat(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return a.say(ctx, strings.Join(args, " "))
	}

	if err := a.svc.Prefs.SetChatOpen(ctx, true); err != nil {
		a.logger.Warn(ctx, "failed to save chat state", logging.FieldError, err)
	}
	defer func() {
		if err := a.svc.Prefs.SetChatOpen(ctx, false); err != nil {
			a.logger.Warn(ctx, "failed to save chat state", logging.FieldError, err)
		}
	}()

	a.println("Assistente (linha vazia para sair)")
	a.println("Sugestões: " + strings.Join(services.DefaultSuggestions, " | "))
	for {
		msg, err := GetSimpleText(a.reader, "você", a.out)
		if err != nil || msg == "" {
			return nil
		}
		if err := a.say(ctx, msg); err != nil {
			return err
		}
	}
}

// say sends msg and prints the reply. Only an expired session ends the
// conversation; other failures are shown inline.
func (a *App) say(ctx context.Context, msg string) error {
	reply, err := a.svc.Assistant.Send(ctx, msg)
	if err != nil {
		if errors.Is(err, client.ErrSessionExpired) || errors.Is(err, services.ErrEmptyText) {
			return err
		}
		a.logger.Warn(ctx, "assistant failed", logging.FieldError, err)
		a.println("assistente: " + services.AssistantErrorText(err))
		return nil
	}

	a.println("assistente: " + reply.Message)
	for _, s := range reply.Summaries {
		a.println("  ✓ " + s)
	}
	if len(reply.Suggestions) > 0 {
		a.println("Sugestões: " + strings.Join(reply.Suggestions, " | "))
	}
	return nil
}

func (a *App) resetChat(ctx context.Context, _ []string) error {
	if err := a.svc.Assistant.Reset(ctx); err != nil {
		return err
	}
	a.println("Nova conversa iniciada.")
	return nil
}

func (a *App) telegramStatus(ctx context.Context, _ []string) error {
	s, err := a.svc.Telegram.Status(ctx)
	if err != nil {
		return err
	}
	if !s.Connected {
		a.println("Telegram não vinculado. Use 'telegram-link'.")
		return nil
	}
	a.println("Telegram vinculado (chat " + orDash(s.TelegramChatID) + ").")
	return nil
}

func (a *App) telegramLink(ctx context.Context, _ []string) error {
	code, err := a.svc.Telegram.LinkCode(ctx)
	if err != nil {
		return err
	}
	a.println("Código de vínculo do Telegram: " + code.Code)
	if code.ExpiresAt != "" {
		a.println("Válido até " + code.ExpiresAt)
	}
	return nil
}

func (a *App) exportCSV(ctx context.Context, args []string) error {
	month := a.month(ctx)
	if len(args) > 0 {
		month = args[0]
	}
	res, err := a.svc.Export.ExpensesCSV(ctx, month)
	if err != nil {
		return err
	}
	a.printf("Despesas de %s exportadas: %s (%d bytes)\n", months.Label(month), res.Location, res.Size)
	return nil
}
