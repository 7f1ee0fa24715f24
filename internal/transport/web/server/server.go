package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/crypto/acme/autocert"

	"github.com/indiesound/artist-insights/internal/domain"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	TLSDisabled       bool
	TLSDisabledPort   int
	AutocertHostnames []string
	Router            http.Handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := s.listen()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	logger := domain.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "serving HTTP", "address", listener.Addr().String(), "tls", !s.TLSDisabled)

	select {
	case err := <-errCh:
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down HTTP server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving HTTP: %w", err)
	}
	return nil
}

func (s *Server) listen() (net.Listener, error) {
	if s.TLSDisabled {
		listener, err := net.Listen("tcp", fmt.Sprintf(":%d", s.TLSDisabledPort))
		if err != nil {
			return nil, fmt.Errorf("listening on port %d: %w", s.TLSDisabledPort, err)
		}
		return listener, nil
	}
	return autocert.NewListener(s.AutocertHostnames...), nil
}
