package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/indiesound/artist-insights/internal/app"
	"github.com/indiesound/artist-insights/internal/domain"
)

import _ "github.com/joho/godotenv/autoload"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := app.NewLogger(app.MustGetEnvAsString(ctx, "LOG_LEVEL"))
	if err != nil {
		panic("unable to setup logger: " + err.Error())
	}
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	components, err := app.Setup(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "unable to setup components", "error", err)
		os.Exit(1)
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	for _, c := range components {
		grp.Go(func() error {
			return c.Run(grpCtx)
		})
	}

	if err = grp.Wait(); err != nil {
		logger.ErrorContext(ctx, "shutting down due to error", "error", err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "shut down")
}
