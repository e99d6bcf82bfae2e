package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"ridehail/internal/api"
	"ridehail/internal/api/handlers"
	"ridehail/internal/config"
	"ridehail/internal/notification"
	"ridehail/internal/repository"
	"ridehail/internal/repository/memory"
	"ridehail/internal/repository/migrations"
	"ridehail/internal/repository/postgres"
	"ridehail/internal/repository/sqlite"
	"ridehail/internal/services"
)

// stores bundles the repositories for the configured backend with the
// function that releases its connections.
type stores struct {
	accounts repository.AccountRepository
	rides    repository.RideRepository
	close    func()
}

func openStores(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*stores, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &stores{
			accounts: memory.NewAccountRepository(),
			rides:    memory.NewRideRepository(),
			close:    func() {},
		}, nil

	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnRun {
			if err := postgres.Migrate(ctx, pool, logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &stores{
			accounts: postgres.NewAccountRepository(pool),
			rides:    postgres.NewRideRepository(pool),
			close:    pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Connect(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if cfg.MigrateOnRun {
			if err := sqlite.Migrate(ctx, db, logger); err != nil {
				db.Close()
				return nil, err
			}
		}
		return &stores{
			accounts: sqlite.NewAccountRepository(db),
			rides:    sqlite.NewRideRepository(db),
			close:    func() { db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// openMigrationDB returns a database/sql handle for goose and the dialect of
// its migration set.
func openMigrationDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, migrations.Dialect, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg)
		if err != nil {
			return nil, "", nil, err
		}
		db := stdlib.OpenDBFromPool(pool)
		return db, migrations.Postgres, func() { db.Close(); pool.Close() }, nil

	case config.DriverSQLite:
		db, err := sqlite.Connect(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, "", nil, err
		}
		return db, migrations.SQLite, func() { db.Close() }, nil
	}
	return nil, "", nil, fmt.Errorf("database driver %q has no schema to migrate", cfg.Driver)
}

// gatewayCloser is implemented by gateways that hold connections.
type gatewayCloser interface {
	Close() error
}

func openGateway(cfg config.NotificationConfig, logger *slog.Logger) (notification.Gateway, error) {
	switch cfg.Driver {
	case config.NotifierLog:
		return notification.NewLogGateway(logger), nil
	case config.NotifierAMQP:
		return notification.NewAMQPGateway(cfg.AMQPURL, cfg.Exchange, cfg.RoutingKey, logger)
	}
	return nil, fmt.Errorf("unsupported notification driver %q", cfg.Driver)
}

// app is the fully wired server.
type app struct {
	server        *http.Server
	listener      net.Listener
	notifications *services.NotificationService
	stores        *stores
	gateway       notification.Gateway
	logger        *slog.Logger
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	st, err := openStores(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Database.Driver, err)
	}

	gateway, err := openGateway(cfg.Notification, logger)
	if err != nil {
		st.close()
		return nil, fmt.Errorf("opening %s notification gateway: %w", cfg.Notification.Driver, err)
	}

	notificationService := services.NewNotificationService(gateway, cfg.Notification, logger)
	accountService := services.NewAccountService(st.accounts, notificationService, logger)
	rideService := services.NewRideService(accountService, st.rides, cfg.Ride, logger)

	router := api.NewRouter(
		handlers.NewAccountHandler(accountService, logger),
		handlers.NewRideHandler(rideService, logger),
	)

	return &app{
		server: &http.Server{
			Addr:         cfg.Server.Port,
			Handler:      api.NewEngine(router, logger),
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
		notifications: notificationService,
		stores:        st,
		gateway:       gateway,
		logger:        logger,
	}, nil
}

// close stops the notifier, waits for queued notifications and then
// releases the gateway and the stores, in that order.
func (a *app) close() error {
	a.notifications.Shutdown()

	var err error
	if c, ok := a.gateway.(gatewayCloser); ok {
		err = c.Close()
	}
	a.stores.close()
	return err
}

// listen binds the server address. run calls it when it has not been
// called yet.
func (a *app) listen() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", a.server.Addr, err)
	}
	a.listener = ln
	return nil
}

// run serves HTTP until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout. Connections still open after the timeout are closed,
// which cancels their request contexts.
func (a *app) run(ctx context.Context, shutdownTimeout time.Duration) error {
	if a.listener == nil {
		if err := a.listen(); err != nil {
			return err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("starting server", slog.String("addr", a.listener.Addr().String()))
		if err := a.server.Serve(a.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		closeErr := a.server.Close()
		return errors.Join(fmt.Errorf("shutting down http server: %w", err), closeErr)
	}
	return nil
}
