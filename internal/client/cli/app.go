package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/autosave"
	"github.com/dmitrijs2005/postplanner/internal/client/backup"
	"github.com/dmitrijs2005/postplanner/internal/client/client"
	"github.com/dmitrijs2005/postplanner/internal/client/config"
	"github.com/dmitrijs2005/postplanner/internal/client/models"
	"github.com/dmitrijs2005/postplanner/internal/client/repositories/backups"
	"github.com/dmitrijs2005/postplanner/internal/client/store"
	"github.com/dmitrijs2005/postplanner/internal/clock"
	"github.com/dmitrijs2005/postplanner/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	client  client.Client
	store   *store.Store
	backups *backup.Store[models.Draft]
	db      *sql.DB
	clock   clock.Clock
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	mu          sync.Mutex
	mode        Mode
	lastFailure *autosave.Notification
}

// NewApp opens the local database, connects to the postcard and generation
// services and builds the collection store.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	apiClient, err := client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect postcard service: %w", err)
	}

	gen := client.NewHTTPGenerator(c.GenerationURL, c.GenerationTimeout)
	clk := clock.Real()

	a := &App{
		config:  c,
		client:  apiClient,
		store:   store.New(apiClient, gen, clk, log),
		backups: backup.New[models.Draft](backups.NewSQLiteRepository(db), clk, log),
		db:      db,
		clock:   clk,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	return a, nil
}

func (a *App) Close() error {
	var errs []error
	if a.client != nil {
		errs = append(errs, a.client.Close())
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	return errors.Join(errs...)
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) bool {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
	return changed
}

// checkOnline pings the service once and reloads the collection when it
// comes back.
func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.client.Ping(pingCtx)
	cancel()

	if err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}

	wasOffline := a.Mode() == ModeOffline
	if a.setMode(ctx, ModeOnline) && wasOffline {
		if err := a.store.Load(ctx); err != nil {
			a.log.Warn(ctx, "reload after reconnect", "error", err)
		}
	}
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	mode := a.Mode()
	if mode == "" {
		return ""
	}
	return fmt.Sprintf("(%s)", modeStyle(mode))
}

// Run loads the collection and serves the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Post planner (type 'help' for commands)")

	a.checkOnline(ctx)
	if err := a.store.Load(ctx); err != nil {
		a.printErr(err)
	} else {
		fmt.Fprintf(a.out, "Loaded %d postcards\n", len(a.store.Items()))
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
