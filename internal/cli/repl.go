package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/logging"
)

// Screens the commands belong to.
const (
	routeDashboard = auth.RouteHome
	routeEntries   = "/entries"
	routeEntryNew  = "/entries/new"
	routeEntryEdit = "/entries/:id/edit"
	routeCredit    = "/credit"
	routePlanning  = "/planning"
	routeAssistant = "/assistant"
	routeSettings  = "/settings"
)

var errExit = errors.New("exit")

type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	// route is the screen the command opens; empty when no session is
	// needed. ":id" is replaced by the first argument.
	route string
	run   func(ctx context.Context, args []string) error
}

func (c *command) screen(args []string) string {
	if !strings.Contains(c.route, ":id") {
		return c.route
	}
	id := "_"
	if len(args) > 0 {
		id = args[0]
	}
	return strings.Replace(c.route, ":id", id, 1)
}

// runREPL reads commands until EOF or "exit". The first word selects the
// command, the rest are its arguments. Command errors are reported and the
// loop carries on.
func (a *App) runREPL(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.printf("despesas (%s)> ", a.status(ctx))

		line, err := a.reader.ReadString('\n')
		if err != nil && line == "" {
			if !errors.Is(err, io.EOF) {
				a.logger.Warn(ctx, "failed to read command", logging.FieldError, err)
			}
			a.println()
			return
		}

		if a.dispatch(ctx, line) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command line and reports whether the loop must stop.
func (a *App) dispatch(ctx context.Context, line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	name := strings.ToLower(parts[0])
	c, ok := a.byName[name]
	if !ok {
		a.println("Comando desconhecido:", name)
		return false
	}

	args := parts[1:]
	if c.route != "" {
		ok, err := a.guard(ctx, c.screen(args))
		if err != nil {
			a.report(ctx, err)
			return false
		}
		if !ok {
			return false
		}
	}

	err := c.run(ctx, args)
	if errors.Is(err, errExit) {
		a.println("Até logo!")
		return true
	}
	a.report(ctx, err)
	return false
}

// guard runs the route guard for screen and says whether the command may
// go ahead.
func (a *App) guard(ctx context.Context, screen string) (bool, error) {
	dst, err := a.session.Guard(ctx, screen)
	if err != nil {
		return false, err
	}
	switch {
	case dst == auth.RouteLogin:
		if msg, _ := a.session.Store().TakeLoginMessage(ctx); msg != "" {
			a.println(msg)
		}
		a.println("Você precisa entrar primeiro. Use 'login'.")
		return false, nil
	case dst == auth.RouteChangePassword && screen != auth.RouteChangePassword:
		a.println("Defina uma nova senha antes de continuar. Use 'passwd'.")
		return false, nil
	}
	return true, nil
}

func (a *App) commandTable() []command {
	return []command{
		{name: "help", aliases: []string{"?"}, help: "mostra os comandos", run: a.help},
		{name: "login", help: "entra com a senha", run: a.login},
		{name: "logout", help: "sai da conta", run: a.logout},
		{name: "passwd", help: "troca a senha", route: auth.RouteChangePassword, run: a.changePassword},
		{name: "me", help: "mostra o usuário atual", route: routeSettings, run: a.me},
		{name: "status", help: "mostra sessão, mês e API", run: a.showStatus},
		{name: "month", usage: "[AAAA-MM|next|prev]", help: "mostra ou escolhe o mês", run: a.selectMonth},

		{name: "entries", aliases: []string{"ls"}, usage: "[busca]", help: "lista os lançamentos do mês", route: routeEntries, run: a.listEntries},
		{name: "show", usage: "<id>", help: "mostra um lançamento", route: routeEntries, run: a.showEntry},
		{name: "add", help: "cria um lançamento", route: routeEntryNew, run: a.addEntry},
		{name: "edit", usage: "<id>", help: "edita um lançamento", route: routeEntryEdit, run: a.editEntry},
		{name: "rm", usage: "<id>", help: "apaga um lançamento", route: routeEntries, run: a.deleteEntry},

		{name: "cards", help: "lista os cartões", route: routeCredit, run: a.listCards},
		{name: "addcard", help: "cadastra um cartão", route: routeCredit, run: a.addCard},
		{name: "rmcard", usage: "<id>", help: "apaga um cartão", route: routeCredit, run: a.deleteCard},
		{name: "invoices", usage: "<cartão>", help: "lista as faturas de um cartão", route: routeCredit, run: a.listInvoices},
		{name: "invoice-pay", usage: "<cartão>", help: "registra o pagamento da fatura", route: routeCredit, run: a.payInvoice},

		{name: "dashboard", aliases: []string{"dash"}, help: "resumo do mês", route: routeDashboard, run: a.showDashboard},
		{name: "summary", help: "relatório do mês (totais por categoria e dia)", route: routeDashboard, run: a.showSummary},
		{name: "credit", help: "faturas do mês por cartão", route: routeCredit, run: a.showCredit},
		{name: "invoice", usage: "<cartão>", help: "itens da fatura do mês", route: routeCredit, run: a.showInvoice},
		{name: "forecast", usage: "<cartão> [meses]", help: "previsão das próximas faturas", route: routeCredit, run: a.showForecast},

		{name: "planning", aliases: []string{"plan"}, help: "planejamento do mês", route: routePlanning, run: a.showPlanning},
		{name: "salary", usage: "<valor>", help: "define o salário do mês", route: routePlanning, run: a.setSalary},
		{name: "extra", help: "adiciona uma renda extra no mês", route: routePlanning, run: a.addExtra},
		{name: "rmextra", usage: "<id>", help: "apaga uma renda extra do mês", route: routePlanning, run: a.deleteExtra},
		{name: "bill", help: "adiciona uma conta fixa", route: routePlanning, run: a.addBill},
		{name: "rmbill", usage: "<id>", help: "apaga uma conta fixa", route: routePlanning, run: a.deleteBill},
		{name: "plan-pull", help: "baixa o planejamento do servidor", route: routePlanning, run: a.pullPlanning},
		{name: "plan-push", help: "envia o planejamento ao servidor", route: routePlanning, run: a.pushPlanning},

		{name: "quick", usage: "<texto>", help: "lançamento rápido, ex.: quick mercado 50", route: routeDashboard, run: a.quickEntry},
		{name: "chat", usage: "[mensagem]", help: "conversa com o assistente", route: routeAssistant, run: a.chat},
		{name: "chat-reset", help: "começa uma nova conversa", route: routeAssistant, run: a.resetChat},
		{name: "telegram", help: "situação do vínculo com o Telegram", route: routeSettings, run: a.telegramStatus},
		{name: "telegram-link", help: "gera o código de vínculo do Telegram", route: routeSettings, run: a.telegramLink},
		{name: "sample-data", help: "adiciona dados de exemplo à conta", route: routeSettings, run: a.addSampleData},
		{name: "export", usage: "[AAAA-MM]", help: "exporta as despesas do mês em CSV", route: routeDashboard, run: a.exportCSV},
		{name: "health", help: "verifica a API agora", run: a.checkHealth},
		{name: "exit", aliases: []string{"quit"}, help: "sai do programa", run: func(context.Context, []string) error { return errExit }},
	}
}

func (a *App) help(ctx context.Context, _ []string) error {
	loggedIn := false
	if dst, err := a.session.Resolve(ctx, auth.RouteHome); err == nil && dst != auth.RouteLogin {
		loggedIn = true
	}
	a.println("Comandos:")
	for _, c := range a.commands {
		if !loggedIn && c.route != "" {
			continue
		}
		a.println(fmt.Sprintf("  %-28s %s", strings.TrimSpace(c.name+" "+c.usage), c.help))
	}
	if !loggedIn {
		a.println("Entre com 'login' para ver todos os comandos.")
	}
	return nil
}
