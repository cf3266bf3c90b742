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

	"golang.org/x/sync/errgroup"

	"github.com/Adriel-M-A/desktop-sales-control/internal/app"
	"github.com/Adriel-M-A/desktop-sales-control/internal/catalog"
	"github.com/Adriel-M-A/desktop-sales-control/internal/platform/db"
	"github.com/Adriel-M-A/desktop-sales-control/internal/reporting"
	"github.com/Adriel-M-A/desktop-sales-control/internal/sales"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbPath, err := db.ResolvePath(cfg.DBPath, cfg.IsProduction())
	if err != nil {
		logger.Error("resolve database path", slog.Any("error", err))
		os.Exit(1)
	}

	conn, err := db.Open(ctx, dbPath)
	if err != nil {
		logger.Error("open database", slog.String("path", dbPath), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Warn("close database", slog.Any("error", err))
		}
	}()

	if err := db.Init(ctx, conn); err != nil {
		logger.Error("init schema", slog.Any("error", err))
		os.Exit(1)
	}

	catalogService := catalog.NewService(catalog.NewRepository(conn))
	salesService := sales.NewService(sales.NewRepository(conn))
	reportingService := reporting.NewService(reporting.NewRepository(conn))

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		CatalogHandler:   catalog.NewHandler(logger, catalogService),
		SalesHandler:     sales.NewHandler(logger, salesService),
		ReportingHandler: reporting.NewHandler(logger, reportingService),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("db", dbPath))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
