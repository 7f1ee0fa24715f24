package router

import (
	"net/http"

	"github.com/indiesound/artist-insights/internal/domain"
)

// AuthValidator attempts to validate authentication from a request.
// Returns nil, nil if this validator doesn't apply (wrong auth type).
// Returns the identity, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(r *http.Request) (*domain.Identity, error)

// NewAuthMiddleware attaches the identity of the first validator that accepts the request.
// Requests no validator applies to continue anonymously, since most read endpoints are
// public and only add viewer state when signed in.
func NewAuthMiddleware(validators []AuthValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				identity, err := validate(r)
				if identity == nil && err == nil {
					continue // This validator doesn't apply
				}

				if err != nil {
					logger := domain.LoggerFromContext(r.Context())
					logger.WarnContext(r.Context(), "authentication failed", "error", err)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = w.Write([]byte(`{"message":"Failed to validate credentials."}`))
					return
				}

				logger := domain.LoggerFromContext(r.Context()).With("user_id", identity.ID)
				ctx := domain.ContextWithLogger(r.Context(), logger)
				ctx = domain.ContextWithIdentity(ctx, *identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
