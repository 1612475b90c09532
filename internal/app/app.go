// Package app initializes and runs the main application service.
// It wires configuration, logging, storage, token issuance and routing,
// and handles graceful shutdown.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giftlink/giftlink-backend/internal/auth"
	"github.com/giftlink/giftlink-backend/internal/config"
	"github.com/giftlink/giftlink-backend/internal/db/memorystorage"
	"github.com/giftlink/giftlink-backend/internal/db/mongodb"
	"github.com/giftlink/giftlink-backend/internal/db/storage"
	"github.com/giftlink/giftlink-backend/internal/logger"
	"github.com/giftlink/giftlink-backend/internal/router"
	"github.com/giftlink/giftlink-backend/internal/service"
)

// App encapsulates the configuration, HTTP handler and storage backend
// needed to run the gift exchange service.
type App struct {
	cfg         *config.Config
	db          storage.Storage
	httpHandler http.Handler
}

// New initializes a new instance of App by:
// - loading configuration
// - initializing logger
// - selecting and connecting the document store
// - wiring the services and the router
func New() (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New()
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	app.db, err = getStorage(app.cfg)
	if err != nil {
		return nil, err
	}

	tokenIssuer := auth.New([]byte(app.cfg.JWTSecret))

	app.httpHandler = router.New(
		service.NewCredentials(app.db, tokenIssuer),
		service.NewGifts(app.db),
		app.db,
	)

	return app, nil
}

// Run starts the HTTP server with graceful shutdown support.
// It listens for system signals and cleans up resources upon termination.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln("server running", "RunAddr", a.cfg.RunAddr)

	server := &http.Server{
		Addr:    a.cfg.RunAddr,
		Handler: a.httpHandler,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Closing the document store and exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// Close finalizes resources used by App such as logging.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

// getStorage connects the MongoDB backend when a DSN is configured and
// falls back to the in-memory store otherwise. The connection is
// established eagerly so a broken DSN fails startup, not the first
// request.
func getStorage(cfg *config.Config) (storage.Storage, error) {
	if cfg.DatabaseDSN == "" {
		logger.Log.Warnln("No DATABASE_DSN configured, using the in-memory store")
		return memorystorage.New()
	}

	return mongodb.New(
		context.Background(),
		cfg.DatabaseDSN,
		cfg.DatabaseName,
		cfg.StoreTimeout,
	)
}
