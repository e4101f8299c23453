package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ineat-platform/ineat-cart-service/internal/cart"
	"github.com/ineat-platform/ineat-cart-service/internal/config"
	"github.com/ineat-platform/ineat-cart-service/internal/events"
	"github.com/ineat-platform/ineat-cart-service/internal/handlers"
	"github.com/ineat-platform/ineat-cart-service/internal/metrics"
	"github.com/ineat-platform/ineat-cart-service/internal/repository"
	"github.com/ineat-platform/ineat-cart-service/internal/server"
	"github.com/ineat-platform/ineat-cart-service/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("starting cart-service", zap.Int("port", cfg.Server.Port))

	db, err := initDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	menuRepo := repository.NewPostgresMenuRepository(db, logger)

	cartStore := repository.NewRedisCartStore(cfg.Redis, logger)
	menuCache := repository.NewRedisMenuCache(cartStore.Client(), cfg.Redis, logger)

	eventPublisher := events.NewKafkaPublisher(cfg.Kafka, logger)
	defer eventPublisher.Close()

	pricingEngine := cart.NewPricingEngine(cfg.Pricing)
	cartManager := cart.NewManager(pricingEngine, cartStore, logger)

	m := metrics.New(cartManager.ActiveCarts)

	cartService := service.NewCartService(cartManager, menuRepo, cartStore, eventPublisher, cfg, logger)
	menuService := service.NewMenuService(menuRepo, menuCache, eventPublisher, cfg, logger)

	h := handlers.NewHandlers(cartService, menuService, m, cfg, logger)
	checks := handlers.HealthChecks{Database: menuRepo, Cache: cartStore}

	srv := server.New(h, checks, m, cfg, logger)

	go func() {
		logger.Info("server starting",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("cart_persistence", cfg.Features.EnableCartPersistence),
			zap.Bool("cart_events", cfg.Features.EnableCartEvents),
		)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", zap.Error(err))
		}
	}()

	eventConsumer := events.NewKafkaConsumer(cfg.Kafka, menuCache, logger)
	go func() {
		if err := eventConsumer.Start(context.Background()); err != nil && err != context.Canceled {
			logger.Error("event consumer failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	eventConsumer.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}

func initDatabase(cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("name", cfg.Database.Name),
	)

	return db, nil
}
