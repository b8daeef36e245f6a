package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/db"
	"github.com/angelmondragon/wms-backend/pkg/logger"
)

// MaybeRunDev applies pending goose migrations on boot when running in dev
// against Postgres with WMS_AUTO_MIGRATE set.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !ShouldAutoRun(cfg) {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "dir": DefaultDir})
	logg.Info(ctx, "running goose migrations (dev auto-run)")

	if err := Run(ctx, sqlDB, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "goose migrations completed")
	return nil
}

// ShouldAutoRun reports whether boot-time migrations apply to cfg.
func ShouldAutoRun(cfg *config.Config) bool {
	if cfg == nil || cfg.FeatureFlags.UseSQLite {
		return false
	}
	return cfg.App.IsDev() && cfg.FeatureFlags.AutoMigrate
}
