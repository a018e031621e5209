// Package server initializes and runs the auth microservice: it acquires
// the user store, builds the crypto primitives and the auth service, starts
// the bus transport, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mkozyrev/gatekeeper/internal/logging"
	"github.com/mkozyrev/gatekeeper/internal/server/auth"
	"github.com/mkozyrev/gatekeeper/internal/server/bus"
	"github.com/mkozyrev/gatekeeper/internal/server/config"
	"github.com/mkozyrev/gatekeeper/internal/server/db"
	"github.com/mkozyrev/gatekeeper/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) *App {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	return &App{config: c, logger: logging.NewSlogLogger(sl)}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// openStore acquires the user store for the lifetime of the app. An empty
// DSN selects the in-memory store for local runs without a database.
func (app *App) openStore(ctx context.Context) (db.Manager, error) {
	if app.config.DatabaseDSN == "" {
		app.logger.Warn(ctx, "No database DSN, using in-memory user store")
		return db.NewInMemoryManager(), nil
	}
	return db.NewPostgresManager(ctx, app.config.DatabaseDSN)
}

func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	store, err := app.openStore(ctx)
	if err != nil {
		return fmt.Errorf("store init error: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			app.logger.Error(ctx, "store close error", "error", err.Error())
		}
	}()

	hasher := auth.NewBcryptHasher(app.config.BcryptCost)
	codec := auth.NewTokenCodec([]byte(app.config.SecretKey), app.config.TokenValidityDuration)
	authService := services.NewAuthService(store.Users(), hasher, codec, app.logger)

	busServer := bus.NewServer(app.config.NATSURL, app.config.QueueGroup, app.logger, authService)
	if err := busServer.Run(ctx); err != nil {
		return fmt.Errorf("bus server error: %w", err)
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
