package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/osse101/BrandishCasino_Go/internal/config"
	"github.com/osse101/BrandishCasino_Go/internal/database"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
)

// migrate applies the embedded schema to the configured database.
// It reads the same environment as the server.
func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var direction database.MigrateDirection
	switch os.Args[1] {
	case "up":
		direction = database.MigrateUp
	case "down":
		direction = database.MigrateDown
	case "status":
		direction = database.MigrateStatus
	default:
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	logger.InitLogger(logger.NewConfig(cfg.LogLevel, cfg.LogFormat, "brandish-casino-migrate", "", cfg.Environment, false))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, direction); err != nil {
		slog.Error("Migration failed", "direction", direction, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, direction database.MigrateDirection) error {
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		return database.Migrate(ctx, db, database.DriverSQLite, direction)

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
		if err != nil {
			return err
		}
		defer pool.Close()
		db := stdlib.OpenDBFromPool(pool)
		defer db.Close()
		return database.Migrate(ctx, db, database.DriverPostgres, direction)
	}
	return fmt.Errorf("%s %q", config.ErrMsgUnsupportedDriver, cfg.DBDriver)
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("Commands:")
	fmt.Println("  up      Apply all pending migrations")
	fmt.Println("  down    Roll back the most recent migration")
	fmt.Println("  status  Print the applied and pending migrations")
}
