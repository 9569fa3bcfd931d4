package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/romario-developer/despesas-pwa/internal/auth"
	"github.com/romario-developer/despesas-pwa/internal/breaker"
	"github.com/romario-developer/despesas-pwa/internal/cli"
	"github.com/romario-developer/despesas-pwa/internal/client"
	"github.com/romario-developer/despesas-pwa/internal/config"
	"github.com/romario-developer/despesas-pwa/internal/events"
	"github.com/romario-developer/despesas-pwa/internal/export"
	"github.com/romario-developer/despesas-pwa/internal/logging"
	"github.com/romario-developer/despesas-pwa/internal/models"
	"github.com/romario-developer/despesas-pwa/internal/services"
	"github.com/romario-developer/despesas-pwa/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	base, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	logger := base.With(logging.FieldComponent, logging.ComponentApp)

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open local store: %w", err)
	}
	defer db.Close()

	store := auth.NewStore(db)
	session := auth.NewSession(store, auth.NewMemoryNavigator(auth.RouteHome), auth.WithSessionLogger(logger))
	tracker := breaker.New(breaker.Config{})
	session.OnLogout(tracker.Reset)

	api, err := client.New(client.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		Verbose: cfg.Verbose,
		Tokens:  store,
		Session: session,
		Tracker: tracker,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	broadcaster := events.NewBroadcaster()
	var notifier events.Notifier = broadcaster
	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			return err
		}
		defer pub.Close()
		notifier = events.Multi{broadcaster, pub}
	}

	sink, err := exportSink(ctx, cfg)
	if err != nil {
		return err
	}

	prefs := services.NewPreferences(db, cfg.Timezone)
	cards := services.NewCardService(api)
	credit := services.NewCreditService(api)
	svc := cli.Services{
		Auth:       services.NewAuthService(api, session),
		Entries:    services.NewEntryService(api, notifier, logger),
		Cards:      cards,
		Credit:     credit,
		Dashboard:  services.NewDashboardService(api, cards, credit),
		Planning:   services.NewPlanningService(api, db, models.NewID),
		QuickEntry: services.NewQuickEntryService(api, notifier, logger),
		Assistant:  services.NewAssistantService(api, db, prefs, notifier, logger),
		Telegram:   services.NewTelegramService(api),
		Export:     services.NewExportService(api, store, cfg.AdminToken, sink, logger),
		Health:     services.NewHealthService(api, logger),
		Prefs:      prefs,
	}

	changes, unsubscribe := broadcaster.Subscribe(16)
	defer unsubscribe()

	app := cli.NewApp(cli.Options{
		Services:       svc,
		Session:        session,
		Logger:         logger,
		Tracker:        tracker,
		Changes:        changes,
		HealthInterval: cfg.HealthInterval,
		Timezone:       cfg.Timezone,
		In:             os.Stdin,
		Out:            os.Stdout,
	})
	app.Root(ctx)
	return nil
}

func exportSink(ctx context.Context, cfg *config.Config) (export.Sink, error) {
	if cfg.S3Enabled() {
		s3, err := export.NewS3Sink(ctx, cfg.S3)
		if err != nil {
			return nil, fmt.Errorf("s3 export sink: %w", err)
		}
		return s3, nil
	}
	return export.NewFileSink(cfg.ExportDir), nil
}
