package main

import (
	"context"
	"net/http"
	"os"

	"github.com/arbrands/storefront-backend/api/routes"
	"github.com/arbrands/storefront-backend/internal/accounts"
	"github.com/arbrands/storefront-backend/internal/auth"
	"github.com/arbrands/storefront-backend/internal/categories"
	"github.com/arbrands/storefront-backend/internal/products"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db"
	"github.com/arbrands/storefront-backend/pkg/logger"
	"github.com/arbrands/storefront-backend/pkg/migrate"
	"github.com/arbrands/storefront-backend/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	accountRepo := accounts.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		AccountRepo:    accountRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			DB:          dbClient,
			Redis:       redisClient,
			AccountRepo: accountRepo,
			AuthSvc:     authService,
			CategorySvc: categoryService,
			ProductSvc:  productService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
