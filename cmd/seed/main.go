package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/wms-backend/internal/seed"
	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/migrate"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "wms-seed"})

	_ = godotenv.Load()

	mode := flag.String("mode", "seed", "seed mode: seed|force|more")
	count := flag.Int("count", seed.DefaultMoreCount, "products and orders to add in -mode=more")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "wms-seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "mode": *mode})

	if cfg.App.IsProd() {
		logg.Warn(ctx, "refusing to seed a production database")
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeRunDev(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "dev migrations", err)

	gen, err := seed.NewGenerator(seed.Params{
		DB:     dbClient,
		Logger: logg,
	})
	requireResource(ctx, logg, "seed generator", err)

	var out any
	switch *mode {
	case "seed":
		out, err = gen.Seed(ctx)
	case "force":
		out, err = gen.ForceSeed(ctx)
	case "more":
		out, err = gen.SeedMore(ctx, seed.MoreOptions{Count: *count})
	default:
		fmt.Fprintf(os.Stderr, "unknown -mode %q\n", *mode)
		os.Exit(2)
	}
	if err != nil {
		logg.Error(ctx, "seed failed", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logg.Error(ctx, "failed to print result", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
