package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"taskflow/internal/config"
	"taskflow/internal/logging"
	"taskflow/internal/server"
	"taskflow/internal/service"
	"taskflow/internal/storage"
	"taskflow/internal/storage/memory"
	"taskflow/internal/storage/postgres"
	"taskflow/internal/storage/sqlite"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()
	cfg := config.Load()

	addrFlag := flag.String("addr", cfg.Server.Addr, "HTTP listen address")
	staticFlag := flag.String("static", cfg.Server.StaticDir, "Directory with built frontend")
	backendFlag := flag.String("storage", cfg.Storage.Backend, "Storage backend: sqlite, postgres or memory")
	dbFlag := flag.String("db", cfg.Storage.SQLitePath, "Path to sqlite database file")
	seedFlag := flag.Bool("seed", cfg.Storage.Seed, "Load the demo fixture into an empty store")
	logFileFlag := flag.String("log-file", cfg.Storage.LogFile, "Rotated log file; empty logs to stdout only")
	flag.Parse()

	logger := logging.New(*logFileFlag)
	logger.Info("TaskFlow backend starting")

	store, err := openStore(*backendFlag, *dbFlag, cfg, logger)
	if err != nil {
		logger.WithError(err).Error("unable to open store")
		os.Exit(1)
	}
	defer store.Close()

	if *seedFlag {
		if err := storage.Seed(context.Background(), store); err != nil {
			logger.WithError(err).Error("unable to seed store")
			os.Exit(1)
		}
	}

	svc := service.New(store, logger)
	srv := server.New(svc, logger, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.WithField("addr", httpServer.Addr).Info("starting server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Error("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("failed to shutdown server")
	}

	logger.Info("server stopped")
}

func openStore(backend, dbPath string, cfg *config.Config, logger *logrus.Logger) (storage.Store, error) {
	switch backend {
	case "sqlite":
		return sqlite.Open(dbPath, logger)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return postgres.Open(ctx, cfg.Database, logger)
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
