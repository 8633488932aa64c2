// Package server initializes and runs the SkillSwap application server.
// It opens the database, applies migrations, wires the services, and starts
// the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/skillswap/internal/logging"
	"github.com/dmitrijs2005/skillswap/internal/server/api"
	"github.com/dmitrijs2005/skillswap/internal/server/config"
	"github.com/dmitrijs2005/skillswap/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/skillswap/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *api.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	settlement := services.NewSettlementService(db, rm)
	users := services.NewUserService(db, rm, cfg)
	profiles := services.NewProfileService(db, rm, cfg)
	skills := services.NewSkillService(db, rm)
	swaps := services.NewSwapService(db, rm, settlement)

	srv := api.NewServer(cfg, logger, users, profiles, skills, swaps)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app", "addr", app.config.EndpointAddrHTTP)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
