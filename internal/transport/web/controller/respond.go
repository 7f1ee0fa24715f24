package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/indiesound/artist-insights/internal/domain"
)

// Bool string constants for route parameters.
const (
	boolTrue  = "true"
	boolFalse = "false"
)

// maxBodyBytes bounds the size of JSON request bodies.
const maxBodyBytes = 64 << 10

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, cacheMaxAge time.Duration, v any) {
	w.Header().Set("Content-Type", "application/json")
	if cacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(cacheMaxAge.Seconds())))
	} else {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger := domain.LoggerFromContext(ctx)
		logger.ErrorContext(ctx, "unable to write response", "error", err)
	}
}

// writeError logs err and maps it to a status code. Validation and auth failures carry
// their message to the client; remote write failures get a generic retry message.
func writeError(ctx context.Context, w http.ResponseWriter, err error, msg string) {
	logger := domain.LoggerFromContext(ctx)

	var (
		validationErr *domain.ValidationError
		authErr       *domain.AuthRequiredError
		notFoundErr   *domain.NotFoundError
		remoteErr     *domain.RemoteWriteError
	)
	switch {
	case errors.As(err, &validationErr):
		logger.WarnContext(ctx, msg, "error", err)
		writeJSON(ctx, w, http.StatusBadRequest, 0, errorResponse{
			Message: validationErr.Message,
			Field:   validationErr.Field,
		})
	case errors.As(err, &authErr):
		logger.WarnContext(ctx, msg, "error", err)
		writeJSON(ctx, w, http.StatusUnauthorized, 0, errorResponse{Message: authErr.Error()})
	case errors.As(err, &notFoundErr):
		logger.WarnContext(ctx, msg, "error", err)
		writeJSON(ctx, w, http.StatusNotFound, 0, errorResponse{Message: notFoundErr.Error()})
	case errors.As(err, &remoteErr):
		logger.ErrorContext(ctx, msg, "error", err)
		writeJSON(ctx, w, http.StatusServiceUnavailable, 0, errorResponse{
			Message: "Something went wrong saving your change. Please try again.",
		})
	default:
		logger.ErrorContext(ctx, msg, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("reading request body: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding request body: %w", err)
	}
	return nil
}
