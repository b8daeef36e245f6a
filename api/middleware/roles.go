package middleware

import (
	"net/http"
	"slices"

	"github.com/angelmondragon/wms-backend/api/responses"
	pkgAuth "github.com/angelmondragon/wms-backend/pkg/auth"
	"github.com/angelmondragon/wms-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wms-backend/pkg/errors"
	"github.com/angelmondragon/wms-backend/pkg/logger"
)

const forbiddenMessage = "Insufficient permissions"

// RequireRole admits callers holding any of roles. Mount after Auth.
func RequireRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !slices.Contains(roles, RoleFromContext(r.Context())) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, forbiddenMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePermission admits the roles the permission table grants perm.
func RequirePermission(perm pkgAuth.Permission, logg *logger.Logger) func(http.Handler) http.Handler {
	gate := RequireRole(logg, pkgAuth.RolesFor(perm)...)
	return func(next http.Handler) http.Handler {
		inner := gate(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logg != nil {
				r = r.WithContext(logg.WithField(r.Context(), "permission", string(perm)))
			}
			inner.ServeHTTP(w, r)
		})
	}
}
