package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mohammadpnp/party-onboarding/internal/bootstrap"
	"github.com/mohammadpnp/party-onboarding/internal/config"
	"github.com/mohammadpnp/party-onboarding/internal/infrastructure/db/models"
	"github.com/mohammadpnp/party-onboarding/internal/logging"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}
	if err := models.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to create pgx pool", zap.Error(err))
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable at startup", zap.String("address", cfg.Redis.Address), zap.Error(err))
	}

	blobs, err := bootstrap.NewBlobStore(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to configure blob storage", zap.Error(err))
	}
	sender, err := bootstrap.NewOTPSender(cfg, logger)
	if err != nil {
		logger.Fatal("failed to configure sms sender", zap.Error(err))
	}

	server, err := bootstrap.NewHTTPServer(cfg, bootstrap.Deps{
		DB:     db,
		Pool:   pool,
		Redis:  rdb,
		Blobs:  blobs,
		Sender: sender,
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()
	logger.Info("server started", zap.String("port", cfg.Port), zap.String("storage", cfg.Storage.Provider))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
}
