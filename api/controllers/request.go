package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/wms-backend/api/middleware"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
)

func callerID(r *http.Request) (uuid.UUID, error) {
	id := middleware.UserUUIDFromContext(r.Context())
	if id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Access token required")
	}
	return id, nil
}

// optionalUUID parses an optional id field from a request body.
func optionalUUID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid "+field).WithDetails(map[string]any{"field": field})
	}
	return &id, nil
}
