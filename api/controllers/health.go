package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/arbrands/storefront-backend/api/responses"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db"
	pkgerrors "github.com/arbrands/storefront-backend/pkg/errors"
	"github.com/arbrands/storefront-backend/pkg/logger"
	"github.com/arbrands/storefront-backend/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ARBrands-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady checks the backing stores. Redis is optional and skipped when
// not configured.
func HealthReady(cfg *config.Config, logg *logger.Logger, database *db.Client, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-ARBrands-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{}
		if database != nil {
			if err := database.Ping(ctx); err != nil {
				checks["database"] = "unavailable"
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable").WithDetails(checks))
				return
			}
			checks["database"] = "ok"
		}
		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "unavailable"
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis unavailable").WithDetails(checks))
				return
			}
			checks["redis"] = "ok"
		}

		responses.WriteSuccess(w, map[string]any{"status": "ready", "checks": checks})
	}
}
