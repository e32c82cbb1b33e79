// Package server wires the reference server: storage, the postcard gRPC
// service and the phase generation HTTP API. Both listeners stop on
// SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/dmitrijs2005/postplanner/internal/logging"
	"github.com/dmitrijs2005/postplanner/internal/server/config"
	"github.com/dmitrijs2005/postplanner/internal/server/httpapi"
	"github.com/dmitrijs2005/postplanner/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/postplanner/internal/server/services"

	gs "github.com/dmitrijs2005/postplanner/internal/server/grpc"
)

type App struct {
	config            *config.Config
	zap               *zap.Logger
	logger            logging.Logger
	repomanager       repomanager.RepositoryManager
	postcardService   *services.PostcardService
	generationService *services.GenerationService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	zl, err := logging.NewProductionZap(c.Debug)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}
	logger := logging.NewZapLogger(zl)

	rm, err := newRepositoryManager(ctx, c, logger)
	if err != nil {
		_ = zl.Sync()
		return nil, err
	}

	llm, err := services.NewTextGenerator(services.ProviderConfig{
		Type:     c.AIProvider,
		APIKey:   c.AIAPIKey,
		Model:    c.AIModel,
		Endpoint: c.AIEndpoint,
	})
	switch {
	case errors.Is(err, services.ErrProviderNotConfigured):
		logger.Warn(ctx, "No AI API key set, phase generation is disabled")
		llm = nil
	case err != nil:
		_ = rm.Close()
		return nil, fmt.Errorf("AI provider init error: %w", err)
	}

	ps := services.NewPostcardService(rm)
	gen := services.NewGenerationService(ps, llm, logger)

	return &App{
		config:            c,
		zap:               zl,
		logger:            logger,
		repomanager:       rm,
		postcardService:   ps,
		generationService: gen,
	}, nil
}

// newRepositoryManager opens Postgres when a DSN is configured and keeps
// postcards in memory otherwise.
func newRepositoryManager(ctx context.Context, c *config.Config, logger logging.Logger) (repomanager.RepositoryManager, error) {
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "No database DSN set, postcards are kept in memory")
		return repomanager.NewMemoryManager(), nil
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager(db)
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}
	return rm, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.postcardService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddrHTTP, app.zap, app.generationService,
		app.config.GenerationTimeout, app.config.Debug)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "close storage", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
	_ = app.zap.Sync()
}
