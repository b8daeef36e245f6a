package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/wms-backend/api"
	"github.com/angelmondragon/wms-backend/api/routes"
	"github.com/angelmondragon/wms-backend/internal/activity"
	"github.com/angelmondragon/wms-backend/internal/auth"
	"github.com/angelmondragon/wms-backend/internal/inventory"
	"github.com/angelmondragon/wms-backend/internal/orders"
	"github.com/angelmondragon/wms-backend/internal/reports"
	"github.com/angelmondragon/wms-backend/internal/seed"
	"github.com/angelmondragon/wms-backend/internal/users"
	"github.com/angelmondragon/wms-backend/internal/warehouses"
	"github.com/angelmondragon/wms-backend/pkg/auth/session"
	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/instance"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/metrics"
	"github.com/angelmondragon/wms-backend/pkg/migrate"
	"github.com/angelmondragon/wms-backend/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logg := logger.New(logger.Options{ServiceName: "wms-api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(ctx, ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "wms-api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := routes.Deps{
		DB:          dbClient,
		Gatherer:    reg,
		HTTPMetrics: metrics.NewHTTPMetrics(reg),
	}

	var revoker *session.Manager
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()

		revoker, err = session.NewManager(redisClient)
		requireResource(ctx, logg, "session manager", err)

		deps.Redis = redisClient
		deps.RateLimiter = redisClient
		deps.Revocations = revoker
	} else {
		logg.Warn(ctx, "redis not configured; rate limiting and token revocation disabled")
	}

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)

	authParams := auth.ServiceParams{
		DB:             dbClient,
		UserRepo:       userRepo,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	}
	if revoker != nil {
		authParams.Revoker = revoker
	}
	deps.Auth, err = auth.NewService(authParams)
	requireResource(ctx, logg, "auth service", err)

	deps.Users, err = users.NewService(userRepo)
	requireResource(ctx, logg, "users service", err)

	deps.Inventory, err = inventory.NewService(inventory.NewRepository(gormDB))
	requireResource(ctx, logg, "inventory service", err)

	deps.Orders, err = orders.NewService(orders.NewRepository(gormDB), dbClient)
	requireResource(ctx, logg, "orders service", err)

	deps.Warehouses, err = warehouses.NewService(dbClient, warehouses.NewRepository(gormDB))
	requireResource(ctx, logg, "warehouses service", err)

	deps.Reports, err = reports.NewService(reports.NewRepository(gormDB), activity.NewRepository(gormDB))
	requireResource(ctx, logg, "reports service", err)

	if !cfg.App.IsProd() {
		deps.Seeder, err = seed.NewGenerator(seed.Params{
			DB:      dbClient,
			Logger:  logg,
			Metrics: metrics.NewJobMetrics(reg),
		})
		requireResource(ctx, logg, "seed generator", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"version":  cfg.App.Version,
		"instance": instance.ID(),
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, routes.NewRouter(cfg, logg, deps), cfg.App.ShutdownTimeout, logg)
	if err := server.Run(ctx); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped")
}

func requireResource(ctx context.Context, logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", name), err)
	os.Exit(1)
}
