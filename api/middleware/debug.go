package middleware

import (
	"net/http"

	"github.com/angelmondragon/wms-backend/api/responses"
)

// ErrorDebug exposes error chains in responses. Never enable in production.
func ErrorDebug(enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(responses.WithDebug(r.Context())))
		})
	}
}
