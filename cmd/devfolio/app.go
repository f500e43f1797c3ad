package main

import (
	"context"
	"fmt"
	"log/slog"

	githubadapter "github.com/ericfisherdev/devfolio/internal/adapter/driven/github"
	"github.com/ericfisherdev/devfolio/internal/adapter/driven/filestore"
	sqliteadapter "github.com/ericfisherdev/devfolio/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/devfolio/internal/adapter/driving/http"
	"github.com/ericfisherdev/devfolio/internal/application"
	"github.com/ericfisherdev/devfolio/internal/config"
	"github.com/ericfisherdev/devfolio/internal/domain/port/driven"
)

// app holds the wired application shared by the serve and build commands.
type app struct {
	portfolio *application.PortfolioService
	pinger    httphandler.Pinger
	close     func() error
}

// newApp opens the configured cache backend and wires the portfolio service.
// The caller must call close when done.
func newApp(ctx context.Context, c *config.Config, logger *slog.Logger) (*app, error) {
	store, pinger, closeStore, err := openStore(ctx, c, logger)
	if err != nil {
		return nil, err
	}

	client, err := githubadapter.NewClient(c.GitHubAPIURL)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("create github client: %w", err)
	}
	logger.Info("github client created", "username", c.GitHubUsername, "api_url", c.GitHubAPIURL)

	cache := application.NewCacheStore(store, application.SchemaVersion, c.CacheTTL, nil, logger)
	portfolio := application.NewPortfolioService(client, cache, c.GitHubUsername, logger)

	return &app{
		portfolio: portfolio,
		pinger:    pinger,
		close:     closeStore,
	}, nil
}

// openStore returns the KVStore selected by c.Store along with an optional
// health pinger and a close function.
func openStore(ctx context.Context, c *config.Config, logger *slog.Logger) (driven.KVStore, httphandler.Pinger, func() error, error) {
	switch c.Store {
	case config.StoreFile:
		logger.Info("using file cache", "path", c.CacheFile)
		return filestore.New(c.CacheFile), nil, func() error { return nil }, nil

	case config.StoreSQLite:
		// Dual reader/writer with WAL mode.
		db, err := sqliteadapter.NewDB(ctx, c.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("database opened", "path", c.DBPath)

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		logger.Info("migrations complete", "schema_version", version)

		return sqliteadapter.NewKVRepo(db), db, db.Close, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown store %q", c.Store)
	}
}
