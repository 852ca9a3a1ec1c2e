// Package server wires configuration, storage, the login flow controller and
// the gRPC endpoint into one runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/graphauth/internal/logging"
	"github.com/dmitrijs2005/graphauth/internal/server/config"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/blobs"
	"github.com/dmitrijs2005/graphauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/graphauth/internal/server/services"
	"github.com/dmitrijs2005/graphauth/internal/server/sessions"

	gs "github.com/dmitrijs2005/graphauth/internal/server/grpc"
)

// sweepInterval is how often idle login sessions are dropped.
const sweepInterval = time.Minute

// newRepositoryManager is a seam for tests.
var newRepositoryManager = repomanager.New

type App struct {
	config   *config.Config
	logger   logging.Logger
	repos    repomanager.RepositoryManager
	auth     *services.AuthService
	sessions *sessions.Manager
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	backend, err := repomanager.ParseBackend(c.StoreBackend)
	if err != nil {
		return nil, err
	}

	repos, err := newRepositoryManager(ctx, repomanager.Options{
		Backend:     backend,
		DatabaseDSN: c.DatabaseDSN,
		SQLitePath:  c.SQLitePath,
		S3: blobs.S3Options{
			User:         c.S3RootUser,
			Password:     c.S3RootPassword,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "store ready", "backend", string(backend))

	return &App{
		config:   c,
		logger:   logger,
		repos:    repos,
		auth:     services.NewAuthService(repos, c, logger),
		sessions: sessions.NewManager(c.SessionTTL),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context) error {
	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.auth, app.sessions,
		app.config.SecretKey, app.config.RateLimit)
	if err != nil {
		return err
	}

	return s.Run(ctx)
}

// Run serves until ctx is canceled, a termination signal arrives or the
// gRPC server fails. The store is closed before Run returns.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessions.Run(ctx, sweepInterval)
	}()

	err := app.startGRPCServer(ctx)
	if err != nil {
		app.logger.Error(ctx, "gRPC server stopped", "error", err)
	}
	cancelFunc()
	wg.Wait()

	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "store close failed", "error", cerr)
		if err == nil {
			err = fmt.Errorf("close store: %w", cerr)
		}
	}

	app.logger.Info(ctx, "Stopped")
	return err
}
