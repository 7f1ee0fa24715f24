package router

import (
	"net/http"

	"github.com/indiesound/artist-insights/internal/domain"
)

func requireAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !domain.IdentityFromContext(r.Context()).Authenticated() {
			logger := domain.LoggerFromContext(r.Context())
			logger.WarnContext(r.Context(), "attempt to use endpoint requiring auth without a signed-in user")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"sign in required"}`))
			return
		}

		next.ServeHTTP(w, r)
	})
}
