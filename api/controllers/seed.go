package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/wms-backend/api/responses"
	"github.com/angelmondragon/wms-backend/api/validators"
	"github.com/angelmondragon/wms-backend/internal/seed"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
)

// Seeder is the data generator behind the non-production seed routes.
type Seeder interface {
	Seed(ctx context.Context) (*seed.Result, error)
	ForceSeed(ctx context.Context) (*seed.BatchResult, error)
	SeedMore(ctx context.Context, opts seed.MoreOptions) (*seed.BatchResult, error)
}

func SeedDatabase(gen Seeder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seed generator unavailable"))
			return
		}

		result, err := gen.Seed(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		message := "Database seeded successfully!"
		if result.AlreadySeeded {
			message = "Database already seeded!"
		}
		responses.WriteSuccessMessage(w, http.StatusOK, result.Counts, message)
	}
}

func ForceSeed(gen Seeder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seed generator unavailable"))
			return
		}

		result, err := gen.ForceSeed(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, result, "Pagination test data added successfully!")
	}
}

// SeedMore reads the batch size from ?count=.
func SeedMore(gen Seeder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if gen == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "seed generator unavailable"))
			return
		}

		count, err := validators.ParseQueryInt(r, "count", seed.DefaultMoreCount, 1, seed.MaxMoreCount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := gen.SeedMore(r.Context(), seed.MoreOptions{Count: count})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessMessage(w, http.StatusOK, result, "More test data added successfully!")
	}
}
