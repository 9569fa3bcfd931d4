package cli

import (
	"context"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

func (a *App) login(ctx context.Context, _ []string) error {
	if msg, _ := a.session.Store().TakeLoginMessage(ctx); msg != "" {
		a.println(msg)
	}

	password, err := GetPassword(a.reader, "Senha", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	ar, err := a.svc.Auth.Login(ctx, string(password))
	if err != nil {
		return err
	}
	a.dropDashboard()

	if _, err := a.svc.Auth.Me(ctx); err != nil {
		a.logger.Warn(ctx, "failed to load user", logging.FieldError, err)
	}
	if _, err := a.session.Guard(ctx, auth.RouteHome); err != nil {
		return err
	}

	if ar.MustChangePassword {
		a.println("Login efetuado. Defina uma nova senha com 'passwd'.")
		return nil
	}
	a.println("Login efetuado.")
	return nil
}

func (a *App) logout(ctx context.Context, _ []string) error {
	if err := a.svc.Auth.Logout(ctx, ""); err != nil {
		return err
	}
	a.dropDashboard()
	a.println("Você saiu.")
	return nil
}

func (a *App) changePassword(ctx context.Context, _ []string) error {
	current, err := GetPassword(a.reader, "Senha atual", a.out)
	if err != nil {
		return err
	}
	defer wipe(current)

	next, err := GetPassword(a.reader, "Nova senha", a.out)
	if err != nil {
		return err
	}
	defer wipe(next)

	again, err := GetPassword(a.reader, "Repita a nova senha", a.out)
	if err != nil {
		return err
	}
	defer wipe(again)

	if string(next) != string(again) {
		a.println("As senhas não conferem.")
		return nil
	}

	if err := a.svc.Auth.ChangePassword(ctx, string(current), string(next)); err != nil {
		return err
	}
	if _, err := a.session.Guard(ctx, auth.RouteHome); err != nil {
		return err
	}
	a.println("Senha alterada.")
	return nil
}

func (a *App) me(ctx context.Context, _ []string) error {
	u, err := a.svc.Auth.Me(ctx)
	if err != nil {
		return err
	}
	a.printf("Nome:     %s\n", orDash(u.Name))
	a.printf("E-mail:   %s\n", orDash(u.Email))
	a.printf("Telegram: %s\n", orDash(u.TelegramChatID))
	return nil
}

func (a *App) addSampleData(ctx context.Context, _ []string) error {
	ok, err := Confirm(a.reader, "Adicionar lançamentos de exemplo à conta?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.svc.Auth.AddSampleData(ctx); err != nil {
		return err
	}
	a.dropDashboard()
	a.println("Dados de exemplo adicionados.")
	return nil
}

func (a *App) showStatus(ctx context.Context, _ []string) error {
	store := a.session.Store()
	token, err := store.Token(ctx)
	if err != nil {
		return err
	}
	dst, err := a.session.Resolve(ctx, auth.RouteHome)
	if err != nil {
		return err
	}

	switch dst {
	case auth.RouteLogin:
		a.println("Sessão:  nenhuma")
	case auth.RouteChangePassword:
		a.println("Sessão:  ativa, troca de senha pendente")
	default:
		a.println("Sessão:  ativa")
	}
	if exp, ok := auth.TokenExpiry(token); ok && dst != auth.RouteLogin {
		a.printf("Expira:  %s\n", exp.In(months.Location(a.tz)).Format("02/01/2006 15:04"))
	}
	if u, ok, err := store.AuthUser(ctx); err == nil && ok {
		a.printf("Usuário: %s\n", orDash(u.Name))
	}
	a.printf("Mês:     %s\n", months.Label(a.month(ctx)))
	a.printf("Tela:    %s\n", a.session.Navigator().Current())

	a.mu.Lock()
	available := a.available
	a.mu.Unlock()
	switch {
	case available == nil:
		a.println("API:     não verificada")
	case *available:
		a.println("API:     disponível")
	default:
		a.println("API:     " + services.HealthUnavailableMessage)
	}

	if a.tracker == nil {
		return nil
	}
	blocks := a.tracker.Snapshot()
	if len(blocks) == 0 {
		return nil
	}
	loc := months.Location(a.tz)
	a.println("Endpoints bloqueados:")
	for _, b := range blocks {
		a.printf("  %s até %s (%d falhas)\n", b.Key, b.Until.In(loc).Format("15:04:05"), a.tracker.Failures(b.Key))
	}
	return nil
}

func (a *App) selectMonth(ctx context.Context, args []string) error {
	current := a.month(ctx)
	if len(args) == 0 {
		a.println(months.Label(current))
		return nil
	}

	next := args[0]
	switch next {
	case "next", "+":
		next = months.Shift(current, 1)
	case "prev", "-":
		next = months.Shift(current, -1)
	case "now", "atual":
		next = months.Current(a.tz)
	}
	if err := a.svc.Prefs.SetSelectedMonth(ctx, next); err != nil {
		return err
	}
	a.println(months.Label(next))
	return nil
}

func (a *App) checkHealth(ctx context.Context, _ []string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	err := a.svc.Health.Check(ctx)
	available := err == nil
	a.mu.Lock()
	a.available = &available
	a.mu.Unlock()

	if err != nil {
		a.println(services.HealthUnavailableMessage)
		return nil
	}
	a.println("API disponível.")
	return nil
}
