package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/indiesound/artist-insights/internal/domain"
)

const bearerPrefix = "Bearer "

// auth0Claims carries the user's email, which an Auth0 login action adds to access tokens.
type auth0Claims struct {
	Email string `json:"email"`
}

func (c *auth0Claims) Validate(context.Context) error {
	return nil
}

// NewAuth0Validator creates a validator for Auth0 JWT access tokens.
func NewAuth0Validator(auth0Domain, auth0Audience string) (AuthValidator, error) {
	issuerURL, err := url.Parse("https://" + auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{auth0Audience},
		validator.WithCustomClaims(func() validator.CustomClaims {
			return &auth0Claims{}
		}),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return newTokenValidator(jwtValidator.ValidateToken), nil
}

type tokenValidateFunc func(ctx context.Context, token string) (any, error)

func newTokenValidator(validate tokenValidateFunc) AuthValidator {
	return func(r *http.Request) (*domain.Identity, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return nil, nil
		}

		token, err := validate(r.Context(), authHeader[len(bearerPrefix):])
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token: %w", err)
		}

		claims, ok := token.(*validator.ValidatedClaims)
		if !ok || claims.RegisteredClaims.Subject == "" {
			return nil, errors.New("JWT token has no subject")
		}

		identity := &domain.Identity{ID: claims.RegisteredClaims.Subject}
		if custom, ok := claims.CustomClaims.(*auth0Claims); ok {
			identity.Email = custom.Email
		}
		return identity, nil
	}
}
