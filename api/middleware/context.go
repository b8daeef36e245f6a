package middleware

import (
	"context"
	"time"

	"github.com/angelmondragon/wms-backend/pkg/enums"
	"github.com/google/uuid"
)

type contextKey string

const (
	ctxUserID    contextKey = "user_id"
	ctxRole      contextKey = "actor_role"
	ctxEmail     contextKey = "email"
	ctxTokenID   contextKey = "jti"
	ctxExpiresAt contextKey = "token_expires_at"
)

func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}

// UserUUIDFromContext parses the caller id; uuid.Nil when absent or malformed.
func UserUUIDFromContext(ctx context.Context) uuid.UUID {
	id, err := uuid.Parse(UserIDFromContext(ctx))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func RoleFromContext(ctx context.Context) enums.Role {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxRole).(enums.Role); ok {
		return v
	}
	return ""
}

func EmailFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(ctxEmail).(string)
	return v
}

// TokenFromContext returns the jti and expiry of the caller's access token.
func TokenFromContext(ctx context.Context) (string, time.Time) {
	if ctx == nil {
		return "", time.Time{}
	}
	jti, _ := ctx.Value(ctxTokenID).(string)
	exp, _ := ctx.Value(ctxExpiresAt).(time.Time)
	return jti, exp
}

// WithUserID injects the user identifier into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxUserID, userID)
}

// WithRole injects the caller role into the context.
func WithRole(ctx context.Context, role enums.Role) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxRole, role)
}
