package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/till/internal/alerts"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	checkoutStore "github.com/MrJamesThe3rd/till/internal/checkout/store"
	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/database"
	tillHttp "github.com/MrJamesThe3rd/till/internal/http"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	checkoutHandler "github.com/MrJamesThe3rd/till/internal/http/checkout"
	importHandler "github.com/MrJamesThe3rd/till/internal/http/importcsv"
	inventoryHandler "github.com/MrJamesThe3rd/till/internal/http/inventory"
	reportHandler "github.com/MrJamesThe3rd/till/internal/http/report"
	settingsHandler "github.com/MrJamesThe3rd/till/internal/http/settings"
	settlementHandler "github.com/MrJamesThe3rd/till/internal/http/settlement"
	"github.com/MrJamesThe3rd/till/internal/importer"
	"github.com/MrJamesThe3rd/till/internal/inventory"
	inventoryStore "github.com/MrJamesThe3rd/till/internal/inventory/store"
	"github.com/MrJamesThe3rd/till/internal/report"
	"github.com/MrJamesThe3rd/till/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/till/internal/settings/store"
	"github.com/MrJamesThe3rd/till/internal/settlement"
	settlementStore "github.com/MrJamesThe3rd/till/internal/settlement/store"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if err := database.Initialize(cfg.MigrationURL()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		inventoryService  = inventory.NewService(inventoryStore.New(db), inventory.WithLocation(loc))
		settingsService   = settings.NewService(settingsStore.New(db))
		checkoutService   = checkout.NewService(checkoutStore.New(db), settingsService)
		settlementService = settlement.NewService(settlementStore.New(db), settlement.WithLocation(loc))
		importService     = importer.NewService(inventoryService)
		reportService     = report.NewService(checkoutService, inventoryService, settlementService)
	)

	authenticator := auth.New(cfg.Auth.Secret)
	if !authenticator.Enabled() {
		slog.Warn("AUTH_SECRET is empty; API requests are not authenticated")
	}

	router := tillHttp.New(tillHttp.Handlers{
		Inventory:  inventoryHandler.NewHandler(inventoryService),
		Checkout:   checkoutHandler.NewHandler(checkoutService),
		Settlement: settlementHandler.NewHandler(settlementService),
		Settings:   settingsHandler.NewHandler(settingsService),
		Import:     importHandler.NewHandler(importService),
		Report:     reportHandler.NewHandler(reportService, settlementService),
	}, authenticator, cfg.Server.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var scheduler *alerts.Scheduler

	if cfg.Alerts.Enabled {
		scheduler, err = alerts.NewScheduler(alerts.NewService(inventoryService), cfg.Alerts.Schedule, loc)
		if err != nil {
			return err
		}

		scheduler.Start()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "timezone", loc.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}

	slog.Info("server stopped")

	return nil
}
