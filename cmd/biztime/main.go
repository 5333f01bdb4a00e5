package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/biztime/biztime/internal/app"
	"github.com/biztime/biztime/internal/companies"
	"github.com/biztime/biztime/internal/industries"
	"github.com/biztime/biztime/internal/invoices"
	"github.com/biztime/biztime/internal/platform/db"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	companiesRepo := companies.NewRepository(pool)
	companiesService := companies.NewService(companiesRepo)
	companiesHandler := companies.NewHandler(logger, companiesService)

	industriesRepo := industries.NewRepository(pool)
	industriesService := industries.NewService(industriesRepo)
	industriesHandler := industries.NewHandler(logger, industriesService)

	invoicesRepo := invoices.NewRepository(pool)
	invoicesService := invoices.NewService(invoicesRepo)
	invoicesHandler := invoices.NewHandler(logger, invoicesService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		CompaniesHandler:  companiesHandler,
		IndustriesHandler: industriesHandler,
		InvoicesHandler:   invoicesHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
