package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/therishabh/chai-backend/config"
	"github.com/therishabh/chai-backend/db"
	"github.com/therishabh/chai-backend/internal/account/handler"
	repo "github.com/therishabh/chai-backend/internal/account/repository/postgres"
	"github.com/therishabh/chai-backend/internal/account/security"
	"github.com/therishabh/chai-backend/internal/account/service"
	"github.com/therishabh/chai-backend/internal/logger"
	"github.com/therishabh/chai-backend/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env)
	defer log.Sync() //nolint:errcheck

	ctx := context.Background()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	defer dbPool.Close()

	uploader, err := storage.NewS3Uploader(ctx, cfg)
	if err != nil {
		log.Fatal("object storage setup failed", zap.Error(err))
	}

	userRepo := repo.NewPostgresRepository(dbPool)
	tokenService := service.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	hasher := security.NewBcryptHasher()
	userService := service.NewUserService(userRepo, tokenService, hasher, uploader, log)
	authHandler := handler.NewAuthHandler(userService, tokenService, log)
	requireAuth := handler.RequireAuth(tokenService, userRepo, log)

	app := fiber.New()
	handler.RegisterRoutes(app, authHandler, requireAuth)

	log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
