package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/api"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/audit"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/auth"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/config"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/db"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/metrics"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/ratelimiter"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/repository"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/service"
	"github.com/TABARC-Code/wp-scheduled-content-auditor/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	itemRepo := repository.NewPgItemRepository(pool)
	cronRepo := repository.NewPgCronRepository(pool)
	tokens := auth.NewTokenAuthority(cfg.TokenSecret, cfg.TokenTTL, audit.SystemClock)
	limiter := ratelimiter.New(cfg.RateLimit)

	auditSvc := service.NewAuditService(
		itemRepo, cronRepo, tokens, audit.SystemClock,
		cfg.GracePeriod, cfg.MaxAuditItems,
		service.AuditHooks{OnAudit: m.AuditHook()},
		logger,
	)
	transitionSvc := service.NewTransitionService(
		itemRepo, tokens, limiter, audit.SystemClock,
		cfg.DefaultBump,
		service.TransitionHooks{OnTransition: m.TransitionHook()},
		logger,
	)

	// ---- background sweeper ----
	// Context for the background goroutine; cancelled on shutdown signal.
	sweepCtx, cancelSweep := context.WithCancel(ctx)
	defer cancelSweep()

	sweeper := worker.NewSweeper(auditSvc, cfg.SweepInterval, logger)
	go sweeper.Run(sweepCtx)

	// ---- HTTP server ----
	router := api.NewRouter(auditSvc, transitionSvc, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	cancelSweep()

	logger.Info("server stopped cleanly")
}
