// Package app wires storage, services, the anomaly monitor, notifications
// and the terminal client together and runs them until the user exits or
// the process is signalled.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/bannerkeeper/internal/cli"
	"github.com/dmitrijs2005/bannerkeeper/internal/config"
	"github.com/dmitrijs2005/bannerkeeper/internal/filex"
	"github.com/dmitrijs2005/bannerkeeper/internal/logging"
	"github.com/dmitrijs2005/bannerkeeper/internal/monitor"
	"github.com/dmitrijs2005/bannerkeeper/internal/notify"
	"github.com/dmitrijs2005/bannerkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/bannerkeeper/internal/services"
	"github.com/dmitrijs2005/bannerkeeper/internal/storage"
	"github.com/dmitrijs2005/bannerkeeper/internal/supervisor"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	broker *notify.Broker
	tree   *supervisor.Tree
	client *cli.App
}

// NewApp opens the database and builds every component. Logs go to logw,
// the terminal client reads in and writes out.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logw io.Writer) (*App, error) {
	logger := logging.NewSlogLogger(logging.NewLogger(c.LogLevel, logw))

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	db, err := storage.Open(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLiteRepositoryManager()
	broker := notify.NewBroker(logger.Slog())
	mon := monitor.New(db, rm, broker, logger.With("component", "monitor"), c.MonitorInterval, c.MonitorThreshold)

	client, err := cli.NewApp(c, cli.Services{
		Accounts: services.NewAccountService(db, rm, time.Now),
		Catalog:  services.NewCatalogService(db, rm, time.Now),
		Admin:    services.NewAdminService(db, rm, time.Now, c.MonitorThreshold),
		Events:   broker,
	}, logger.With("component", "cli"), in, out)
	if err != nil {
		_ = broker.Close()
		_ = db.Close()
		return nil, err
	}

	tree := supervisor.NewTree(logger.Slog(), supervisor.DefaultTreeConfig())
	tree.Add(mon)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		broker: broker,
		tree:   tree,
		client: client,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the background services and the terminal client. It returns
// when the client exits or ctx is cancelled, after everything has stopped.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	treeDone := app.tree.ServeBackground(ctx)

	clientDone := make(chan error, 1)
	go func() {
		clientDone <- app.client.Run(ctx)
	}()

	var runErr error
	select {
	case runErr = <-clientDone:
	case <-ctx.Done():
		// the client may be blocked reading input; do not wait for it
	}

	cancelFunc()
	<-treeDone

	unstopped, _ := app.tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		app.logger.Warn(ctx, "service failed to stop", "service", svc.Name)
	}

	return app.Close(runErr)
}

// Close releases the broker and the database, returning the first error
// among prev and the close errors.
func (app *App) Close(prev error) error {
	if err := app.broker.Close(); err != nil && prev == nil {
		prev = err
	}
	if err := app.db.Close(); err != nil && prev == nil {
		prev = err
	}
	return prev
}
