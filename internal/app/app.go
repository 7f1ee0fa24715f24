package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/transport/web/router"
	"github.com/indiesound/artist-insights/internal/transport/web/server"
)

type Component interface {
	Run(ctx context.Context) error
}

func Setup(ctx context.Context) ([]Component, error) {
	stores, err := setupStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up document store: %w", err)
	}

	authMiddleware, err := setupAuthMiddleware(ctx)
	if err != nil {
		return nil, fmt.Errorf("setting up auth middleware: %w", err)
	}

	store := stores.Store
	interlock := command.NewInterlock()

	cmds := router.Commands{
		ListCategory:         command.NewListCategory(store),
		GetRecommendation:    command.NewGetRecommendation(store),
		SubmitRecommendation: command.NewSubmitRecommendation(store, interlock),
		SubmitRating:         command.NewSubmitRating(store, interlock),
		ToggleRecommend:      command.NewToggleRecommend(store, interlock),
		PostComment:          command.NewPostComment(store, interlock),
		RecordShare:          command.NewRecordShare(store, interlock),
		GetProfile:           command.NewGetProfile(store),
		SaveProfile:          command.NewSaveProfile(store, interlock),
	}

	httpRouter, err := router.MakeRouter(
		cmds,
		stores.Subscriber,
		router.Options{
			RSSFeedBaseURL:     MustGetEnvAsString(ctx, "RSS_FEED_BASE_URL"),
			RSSFeedAuthorName:  MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_NAME"),
			RSSFeedAuthorEmail: MustGetEnvAsString(ctx, "RSS_FEED_AUTHOR_EMAIL"),
			CacheMaxAge:        MustGetEnvAsDuration(ctx, "CACHE_MAX_AGE"),
			CORSAllowedOrigins: MustGetEnvAsStrings(ctx, "CORS_ALLOWED_ORIGINS"),
			WriteRateLimit:     MustGetEnvAsInt(ctx, "WRITE_RATE_LIMIT"),
			WriteRateWindow:    MustGetEnvAsDuration(ctx, "WRITE_RATE_WINDOW"),
		},
		authMiddleware,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create HTTP router: %w", err)
	}

	srv := &server.Server{
		TLSDisabled:       MustGetEnvAsBoolean(ctx, "HTTP_TLS_DISABLED"),
		TLSDisabledPort:   MustGetEnvAsInt(ctx, "PORT"),
		AutocertHostnames: MustGetEnvAsStrings(ctx, "HTTP_AUTOCERT_HOSTNAMES"),
		Router:            httpRouter,
	}

	return []Component{
		closeAfter{component: srv, close: stores.Close},
	}, nil
}

func setupAuthMiddleware(ctx context.Context) (func(http.Handler) http.Handler, error) {
	var validators []router.AuthValidator

	for _, driver := range MustGetEnvAsStrings(ctx, "AUTH_DRIVERS") {
		switch driver {
		case "auth0":
			v, err := router.NewAuth0Validator(
				MustGetEnvAsString(ctx, "AUTH0_DOMAIN"),
				MustGetEnvAsString(ctx, "AUTH0_AUDIENCE"),
			)
			if err != nil {
				return nil, fmt.Errorf("creating Auth0 validator: %w", err)
			}
			validators = append(validators, v)
		default:
			return nil, fmt.Errorf("unknown auth driver [%s]", driver)
		}
	}

	return router.NewAuthMiddleware(validators), nil
}
