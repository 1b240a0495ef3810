package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/BrandishCasino_Go/internal/catalog"
	"github.com/osse101/BrandishCasino_Go/internal/config"
	"github.com/osse101/BrandishCasino_Go/internal/database"
	"github.com/osse101/BrandishCasino_Go/internal/database/postgres"
	"github.com/osse101/BrandishCasino_Go/internal/database/sqlite"
	"github.com/osse101/BrandishCasino_Go/internal/repository"
)

// OpenStore connects the configured backend. SQLite databases are migrated in place;
// Postgres schemas are managed with cmd/migrate.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), DirPermission); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		if err := database.Migrate(ctx, db, database.DriverSQLite, database.MigrateUp); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
		}
		slog.Info(LogMsgStoreReady, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		return sqlite.NewStore(db), nil

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
		}
		slog.Info(LogMsgStoreReady, "driver", cfg.DBDriver, "host", cfg.DBHost, "db", cfg.DBName)
		return postgres.NewStore(pool), nil
	}
	return nil, fmt.Errorf("%s: %s %q", ErrMsgFailedOpenStore, config.ErrMsgUnsupportedDriver, cfg.DBDriver)
}

// LoadCatalog reads CATALOG_PATH when set, else the embedded tables
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	var (
		cat *catalog.Catalog
		err error
	)
	if cfg.CatalogPath != "" {
		cat, err = catalog.Load(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded, "path", cfg.CatalogPath)
	return cat, nil
}
