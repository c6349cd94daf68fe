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

	"github.com/tellerdesk/tellerdesk/internal/app"
	"github.com/tellerdesk/tellerdesk/internal/auth"
	"github.com/tellerdesk/tellerdesk/internal/branches"
	"github.com/tellerdesk/tellerdesk/internal/cards"
	"github.com/tellerdesk/tellerdesk/internal/employees"
	"github.com/tellerdesk/tellerdesk/internal/ledger"
	"github.com/tellerdesk/tellerdesk/internal/observability"
	"github.com/tellerdesk/tellerdesk/internal/platform/cache"
	"github.com/tellerdesk/tellerdesk/internal/platform/db"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// The card cache is a read accelerator; the service runs without it.
		logger.Warn("redis unavailable, card cache disabled", slog.Any("error", err))
		redisClient = nil
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	metrics := observability.NewMetrics()

	employeeService := employees.NewService(employees.NewRepository(pool))
	authService := auth.NewService(employeeService, cfg.JWTSecret, cfg.TokenTTL)
	branchService := branches.NewService(branches.NewRepository(pool))
	cardCache := cards.NewCache(redisClient, cfg.CardCacheTTL, logger)
	cardService := cards.NewService(cards.NewRepository(pool), cardCache)
	ledgerService := ledger.NewService(ledger.NewRepository(pool), branchService, cardCache)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthHandler:      auth.NewHandler(logger, authService),
		AuthMiddleware:   auth.Middleware{Service: authService},
		EmployeesHandler: employees.NewHandler(logger, employeeService),
		CardsHandler:     cards.NewHandler(logger, cardService),
		LedgerHandler:    ledger.NewHandler(logger, ledgerService),
		BranchesHandler:  branches.NewHandler(logger, branchService),
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped cleanly")
}
