package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/damon-houk/finance-tracker/internal/application/service"
	"github.com/damon-houk/finance-tracker/internal/config"
	"github.com/damon-houk/finance-tracker/internal/domain/repository"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/db"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/handler"
	"github.com/damon-houk/finance-tracker/internal/infrastructure/logger"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Validate already checked the level
	level, _ := logger.ParseLevel(cfg.LogLevel)
	log := logger.NewJSONLogger(os.Stdout, level).WithField("app", "finance-tracker")
	logger.SetDefaultLogger(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("Server terminated", map[string]interface{}{"error": err.Error()})
	}
	log.Info("Server stopped gracefully", nil)
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	txRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := txRepo.Close(closeCtx); err != nil {
			log.Error("Error closing store", map[string]interface{}{"error": err.Error()})
		}
	}()

	log.Info("Store opened", map[string]interface{}{"backend": cfg.StoreBackend})

	txService := service.NewTransactionService(txRepo, log)
	router := handler.NewRouter(log, cfg.CORSAllowedOrigins,
		handler.NewTransactionHandler(txService, log),
		handler.NewHealthHandler(log),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.TransactionRepository, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		client, err := db.ConnectMongo(connectCtx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		repo, err := db.NewMongoTransactionRepository(connectCtx, client, cfg.MongoDatabase)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return repo, nil

	default:
		if err := os.MkdirAll(cfg.BadgerPath, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		badgerDB, err := db.OpenBadger(cfg.BadgerPath)
		if err != nil {
			return nil, err
		}
		return db.NewBadgerTransactionRepository(badgerDB), nil
	}
}
