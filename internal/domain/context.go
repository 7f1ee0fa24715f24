package domain

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

func ContextWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger := ctx.Value(loggerContextKey)
	if logger == nil {
		logger = slog.Default()
	}

	return logger.(*slog.Logger)
}

// Identity is the signed-in user an action is performed as.
// The zero value is an anonymous visitor.
type Identity struct {
	ID    string
	Email string
}

// Authenticated reports whether the identity belongs to a signed-in user.
func (i Identity) Authenticated() bool {
	return i.ID != ""
}

const identityContextKey contextKey = "identity"

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}

func IdentityFromContext(ctx context.Context) Identity {
	identity, _ := ctx.Value(identityContextKey).(Identity)
	return identity
}
