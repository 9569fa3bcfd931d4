package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/months"
	"github.com/romario-developer/despesas-pwa/internal/services"
)

// Services are the API operations the terminal client drives.
type Services struct {
	Auth       services.AuthService
	Entries    services.EntryService
	Cards      services.CardService
	Credit     services.CreditService
	Dashboard  services.DashboardService
	Planning   services.PlanningService
	QuickEntry services.QuickEntryService
	Assistant  services.AssistantService
	Telegram   services.TelegramService
	Export     services.ExportService
	Health     services.HealthService
	Prefs      *services.Preferences
}

type Options struct {
	Services Services
	Session  *auth.Session
	Logger   logging.Logger

	// Tracker is the client's endpoint failure tracker; status lists its
	// blocked endpoints. May be nil.
	Tracker *breaker.Tracker

	// Changes delivers entries-changed events; the cached dashboard is
	// dropped on each one. May be nil.
	Changes <-chan events.Event

	HealthInterval time.Duration
	Timezone       string

	In  io.Reader
	Out io.Writer
}

type App struct {
	svc            Services
	session        *auth.Session
	tracker        *breaker.Tracker
	logger         logging.Logger
	changes        <-chan events.Event
	healthInterval time.Duration
	tz             string

	reader *bufio.Reader
	out    io.Writer

	commands []command
	byName   map[string]*command

	mu        sync.Mutex
	available *bool
	dashboard *services.Dashboard
	dashMonth string
}

func NewApp(opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	a := &App{
		svc:            opts.Services,
		session:        opts.Session,
		tracker:        opts.Tracker,
		logger:         opts.Logger.With(logging.FieldComponent, logging.ComponentApp),
		changes:        opts.Changes,
		healthInterval: opts.HealthInterval,
		tz:             opts.Timezone,
		reader:         bufio.NewReader(opts.In),
		out:            &lockedWriter{w: opts.Out},
	}
	a.commands = a.commandTable()
	a.byName = make(map[string]*command, len(a.commands))
	for i := range a.commands {
		c := &a.commands[i]
		a.byName[c.name] = c
		for _, alias := range c.aliases {
			a.byName[alias] = c
		}
	}
	return a
}

// Root greets the user, asks for the password when there is no valid
// session, starts the background watchers and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.println("Despesas (digite 'help' para ver os comandos)")

	if dst, err := a.session.Resolve(ctx, auth.RouteHome); err == nil && dst == auth.RouteLogin {
		_ = a.login(ctx, nil)
	}

	var wg sync.WaitGroup
	if a.svc.Health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.svc.Health.Watch(ctx, a.healthInterval, a.setHealth)
		}()
	}
	if a.changes != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.watchChanges(ctx)
		}()
	}

	a.runREPL(ctx)
	cancel()
	wg.Wait()
}

func (a *App) setHealth(s services.HealthStatus) {
	a.mu.Lock()
	prev := a.available
	a.available = &s.Available
	a.mu.Unlock()

	switch {
	case !s.Available:
		a.println("\n" + services.HealthUnavailableMessage)
	case prev != nil && !*prev:
		a.println("\nAPI disponível novamente")
	}
}

func (a *App) watchChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-a.changes:
			if !ok {
				return
			}
			a.logger.Debug(ctx, "entries changed", "source", e.Source)
			a.mu.Lock()
			a.dashboard = nil
			a.mu.Unlock()
		}
	}
}

func (a *App) cachedDashboard(month string) (services.Dashboard, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.dashboard == nil || a.dashMonth != month {
		return services.Dashboard{}, false
	}
	return *a.dashboard, true
}

func (a *App) cacheDashboard(month string, d services.Dashboard) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dashboard = &d
	a.dashMonth = month
}

func (a *App) dropDashboard() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dashboard = nil
}

// status is the prompt decoration: user, month, screen and availability.
func (a *App) status(ctx context.Context) string {
	s := ""
	if u, ok, err := a.session.Store().AuthUser(ctx); err == nil && ok && u.Name != "" {
		s = u.Name + " · "
	}
	s += months.Label(a.month(ctx)) + " · " + a.session.Navigator().Current()

	a.mu.Lock()
	if a.available != nil && !*a.available {
		s += " · offline"
	}
	a.mu.Unlock()
	return s
}

func (a *App) month(ctx context.Context) string {
	if a.svc.Prefs == nil {
		return months.Current(a.tz)
	}
	m, err := a.svc.Prefs.SelectedMonth(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read selected month", logging.FieldError, err)
		return months.Current(a.tz)
	}
	return m
}

// lockedWriter serializes writes from the REPL and the background watchers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints err the way the user should read it. An expired session
// also shows the message queued for the login screen.
func (a *App) report(ctx context.Context, err error) {
	if err == nil || errors.Is(err, io.EOF) {
		return
	}
	if errors.Is(err, client.ErrSessionExpired) {
		msg, _ := a.session.Store().TakeLoginMessage(ctx)
		if msg == "" {
			msg = client.MsgSessionExpired
		}
		a.println(msg + " Use 'login' para entrar novamente.")
		return
	}
	a.logger.Debug(ctx, "command failed", logging.FieldError, err)
	a.println("Erro:", describe(err))
}
