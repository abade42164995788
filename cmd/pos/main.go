// cmd/pos/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/pos-terminal/internal/config"
	"github.com/your-org/pos-terminal/internal/domain/cart"
	"github.com/your-org/pos-terminal/internal/domain/catalog"
	"github.com/your-org/pos-terminal/internal/domain/checkout"
	"github.com/your-org/pos-terminal/internal/domain/orders"
	"github.com/your-org/pos-terminal/internal/infrastructure/backend"
	"github.com/your-org/pos-terminal/internal/infrastructure/session"
	"github.com/your-org/pos-terminal/internal/interfaces/http"
	"github.com/your-org/pos-terminal/internal/interfaces/http/middleware"
	"github.com/your-org/pos-terminal/internal/interfaces/http/routes"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := middleware.NewLogger(cfg)
	logger.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Backend API client
	client := backend.NewClient(cfg)

	// Register cart store: Redis-backed when enabled, otherwise in-memory
	var cartStore cart.Store = cart.NewMemoryStore()
	var redisClient *session.Client
	if cfg.Redis.Enabled {
		redisClient, err = session.NewConnection(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		cartStore = cart.NewRedisStore(redisClient.GetClient(), cfg.POS.RegisterID, cfg.Redis.CartTTL)
		logger.WithField("register_id", cfg.POS.RegisterID).Info("Register cart persisted in Redis")
	}

	// Caches
	catalogCache := catalog.NewCache(client, cfg.POS.PageSize, logger)
	orderCache := orders.NewCache(client, logger)

	// Checkout orchestrator
	orchestrator := checkout.NewOrchestrator(
		cartStore,
		orderCache,
		catalogCache,
		client,
		cfg.POS.WalkInCustomerName,
		cfg.POS.RefreshAfterCheckout,
		logger,
	)

	// Seed caches. Failures are recoverable: the register starts with an
	// empty snapshot and the UI offers a retry.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), cfg.Backend.RequestTimeout)
	if err := catalogCache.Refresh(seedCtx); err != nil {
		logger.WithError(err).Warn("Initial catalog fetch failed")
	}
	if err := orderCache.Refresh(seedCtx); err != nil {
		logger.WithError(err).Warn("Initial order fetch failed")
	}
	cancelSeed()

	logger.Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, logger, routes.Dependencies{
		Config:       cfg,
		CartStore:    cartStore,
		CatalogCache: catalogCache,
		OrderCache:   orderCache,
		Orchestrator: orchestrator,
		Backend:      client,
	}, client, redisClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("👋 Shutting down gracefully...")

	// Give server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		logger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	logger.Info("✅ Server shutdown completed")
}
