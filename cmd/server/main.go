// Copyright Collections Gateway Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/langconnect/collections-gw/pkg/adapters/http"
	"github.com/langconnect/collections-gw/pkg/core/config"
	"github.com/langconnect/collections-gw/pkg/core/services"
	"github.com/langconnect/collections-gw/pkg/observability/logging"
	"github.com/langconnect/collections-gw/pkg/storage"
	"github.com/langconnect/collections-gw/pkg/vectorstore"

	// Backend registrations
	_ "github.com/langconnect/collections-gw/pkg/storage/memory"
	_ "github.com/langconnect/collections-gw/pkg/storage/postgres"
	_ "github.com/langconnect/collections-gw/pkg/storage/sqlite"
	_ "github.com/langconnect/collections-gw/pkg/vectorstore/milvus"
)

var (
	// Version is set via ldflags during build
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	port := flag.Int("port", 8080, "HTTP port to listen on")
	version := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	// Print version
	if *version {
		fmt.Printf("Collections Gateway Server\nVersion: %s\nBuild Time: %s\n", Version, BuildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		cfg = config.Default()
	}

	// Override port if specified
	if *port != 8080 {
		cfg.Server.Port = *port
	}

	// Initialize logger
	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logger.Info("Starting Collections Gateway Server",
		"version", Version,
		"build_time", BuildTime)

	initCtx := context.Background()

	// Initialize collection store
	store, err := storage.Providers.New(initCtx, cfg.Storage.Type, map[string]string{
		"dsn":  cfg.Storage.DSN,
		"path": cfg.Storage.Path,
	})
	if err != nil {
		logger.Error("Failed to initialize collection store", "error", err, "type", cfg.Storage.Type)
		os.Exit(1)
	}
	defer store.Close()
	logger.Info("Initialized collection store", "type", cfg.Storage.Type)

	// Initialize vector backend
	backend, err := vectorstore.Providers.New(initCtx, cfg.VectorBackend.Type, map[string]string{
		"address": cfg.VectorBackend.Address,
	})
	if err != nil {
		logger.Error("Failed to initialize vector backend", "error", err, "type", cfg.VectorBackend.Type)
		os.Exit(1)
	}
	defer backend.Close(context.Background())
	logger.Info("Initialized vector backend", "type", cfg.VectorBackend.Type)

	// Initialize collections service
	collections := services.NewCollectionsService(store, backend, cfg.VectorBackend.Dimensions)
	logger.Info("Initialized collections service")

	// Initialize HTTP adapter
	handler := httpAdapter.New(collections, logger)
	logger.Info("Initialized HTTP adapter")

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in goroutine
	go func() {
		logger.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
