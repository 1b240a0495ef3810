package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/BrandishCasino_Go/internal/bootstrap"
	"github.com/osse101/BrandishCasino_Go/internal/casino"
	"github.com/osse101/BrandishCasino_Go/internal/config"
	"github.com/osse101/BrandishCasino_Go/internal/probability"
	"github.com/osse101/BrandishCasino_Go/internal/server"
	"github.com/osse101/BrandishCasino_Go/internal/settings"
	"github.com/osse101/BrandishCasino_Go/internal/sse"
	"github.com/osse101/BrandishCasino_Go/internal/user"
	"github.com/osse101/BrandishCasino_Go/internal/wallet"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	slog.Info(bootstrap.LogMsgStartingCasino, "port", cfg.Port, "db_driver", cfg.DBDriver, "environment", cfg.Environment)
	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "warning", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open store", "error", err)
		os.Exit(1)
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		store.Close()
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		store.Close()
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()

	rt, err := bootstrap.RegisterEventHandlers(ctx, bootstrap.EventHandlerDependencies{
		Bus:    bus,
		Hub:    hub,
		Config: cfg,
	})
	if err != nil {
		hub.Stop()
		store.Close()
		slog.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	resolver := probability.NewResolver(
		store,
		probability.NewProfitGovernor(cfg.Casino.MaxProfitRatio, cfg.Casino.MaxPayoutAbsolute),
		probability.Config{
			FallbackProbability: cfg.Casino.FallbackProbability,
			GovernedProbability: cfg.Casino.GovernedProbability,
			Timeout:             cfg.Casino.SettingsTimeout,
		},
	)

	casinoService := casino.NewService(store, resolver, cat, publisher, nil, casino.Config{
		MinBet:                cfg.Casino.MinBet,
		MaxBet:                cfg.Casino.MaxBet,
		LedgerTimeout:         cfg.Casino.LedgerTimeout,
		MinesInstantLossShare: cfg.Casino.MinesInstantLossShare,
	})
	userService := user.NewService(store, publisher, cfg.Casino.StartingCredits, user.CacheConfig{})
	walletService := wallet.NewService(store, publisher)
	settingsService := settings.NewService(store, publisher)

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		AdminAPIKey:    cfg.AdminAPIKey,
		TrustedProxies: cfg.TrustedProxies,
		RateLimit:      cfg.RateLimit,
	}, server.Services{
		Store:    store,
		Casino:   casinoService,
		Users:    userService,
		Wallet:   walletService,
		Settings: settingsService,
		Hub:      hub,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Casino:             casinoService,
		ResilientPublisher: publisher,
		Realtime:           rt,
		Hub:                hub,
		Store:              store,
	})
}
