package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbelov/tripline/internal/access"
	"github.com/vbelov/tripline/internal/config"
	"github.com/vbelov/tripline/internal/database"
	"github.com/vbelov/tripline/internal/hub"
	"github.com/vbelov/tripline/internal/notify"
)

type App struct {
	logger   *slog.Logger
	config   *config.AppConfig
	dbm      *database.DatabaseManager
	eval     *access.Evaluator
	hub      *hub.Hub
	notifier *notify.Notifier
}

func NewApp(cfg *config.AppConfig) *App {
	db, err := database.GetDatabase(cfg.DB(), cfg.Debug())

	if err != nil {
		panic(err)
	}

	dbm := database.New(db)

	sender := notify.NewSMTPSender(
		cfg.SmtpHost(), cfg.SmtpPort(), cfg.SmtpUsername(), cfg.SmtpPassword(), cfg.SmtpFrom())

	return &App{
		logger:   slog.Default(),
		config:   cfg,
		dbm:      dbm,
		eval:     access.NewEvaluator(dbm),
		hub:      hub.New(),
		notifier: notify.New(sender, cfg.NotifyQueueSize()),
	}
}

func (app *App) Run(ctx context.Context) error {
	if err := app.dbm.Migrate(); err != nil {
		return err
	}

	go app.notifier.Start(ctx)

	api := NewHttpApi(app, app.config.ApiAddr())

	go func() {
		<-ctx.Done()
		_ = api.Shutdown()
	}()

	app.logger.Info("listening on " + app.config.ApiAddr())

	return api.Listen()
}

func main() {
	conf := flag.String("config", "tripline.yml", "name of config file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	cfg := config.NewAppConfig()
	cfg.Load(*conf)

	if err := cfg.LoadEnv("TRIPLINE_"); err != nil {
		slog.Error("error loading env config", slog.Any("error", err))
	}

	if *debug {
		_ = cfg.Set("debug", true)
	}

	level := slog.LevelInfo

	if cfg.Debug() {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	app := NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		slog.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}
