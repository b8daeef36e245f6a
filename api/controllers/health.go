package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/wms-backend/api/responses"
	"github.com/angelmondragon/wms-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
)

const (
	envHeader    = "X-WMS-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is a readiness dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// Health answers /api/health outside the envelope; uptime probes match on it.
func Health(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteRaw(w, http.StatusOK, healthResponse{
			Status:    "OK",
			Message:   "WMS API is running",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Version:   cfg.App.Version,
		})
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis. A nil redis
// pinger means Redis is disabled.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbPinger Pinger, redisPinger Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := map[string]string{"database": "ok"}
		var failed *pkgerrors.Error
		if dbPinger == nil {
			checks["database"] = "unconfigured"
			failed = pkgerrors.New(pkgerrors.CodeDependency, "database unavailable")
		} else if err := dbPinger.Ping(ctx); err != nil {
			checks["database"] = "error"
			failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable")
		}

		if redisPinger == nil {
			checks["redis"] = "disabled"
		} else if err := redisPinger.Ping(ctx); err != nil {
			checks["redis"] = "error"
			if failed == nil {
				failed = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable")
			}
		} else {
			checks["redis"] = "ok"
		}

		if failed != nil {
			responses.WriteError(r.Context(), logg, w, failed.WithDetails(checks))
			return
		}
		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
