package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/hanamura/noodlehouse-backend/api/responses"
	"github.com/hanamura/noodlehouse-backend/pkg/config"
	pkgerrors "github.com/hanamura/noodlehouse-backend/pkg/errors"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
)

// ReadyCheck names one dependency probed by the readiness endpoint.
type ReadyCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Noodlehouse-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, checks ...ReadyCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Noodlehouse-Env", cfg.App.Env)

		var failures error
		for _, check := range checks {
			if check.Ping == nil {
				continue
			}
			if err := check.Ping(r.Context()); err != nil {
				failures = multierr.Append(failures, err)
				if logg != nil {
					ctx := logg.WithField(r.Context(), "dependency", check.Name)
					logg.Error(ctx, "readiness.check_failed", err)
				}
			}
		}
		if failures != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, failures, "dependencies unavailable"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
