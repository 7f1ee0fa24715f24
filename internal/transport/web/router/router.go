package router

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
	"github.com/indiesound/artist-insights/internal/transport/web/controller"
)

// Commands are the operations the HTTP surface exposes.
type Commands struct {
	ListCategory         command.Command[command.ListCategoryRequest, command.CategoryListing]
	GetRecommendation    command.Command[command.GetRecommendationRequest, command.RecommendationDetail]
	SubmitRecommendation command.Command[command.SubmitRecommendationRequest, domain.Card]
	SubmitRating         command.Command[command.SubmitRatingRequest, domain.Card]
	ToggleRecommend      command.Command[command.ToggleRecommendRequest, domain.Card]
	PostComment          command.Command[command.PostCommentRequest, []domain.CommentView]
	RecordShare          command.Command[command.RecordShareRequest, command.Empty]
	GetProfile           command.Command[command.GetProfileRequest, domain.Profile]
	SaveProfile          command.Command[command.SaveProfileRequest, domain.User]
}

type Options struct {
	RSSFeedBaseURL     string
	RSSFeedAuthorName  string
	RSSFeedAuthorEmail string
	CacheMaxAge        time.Duration
	CORSAllowedOrigins []string
	WriteRateLimit     int
	WriteRateWindow    time.Duration
}

func MakeRouter(
	cmds Commands,
	subscriber datasources.Subscriber,
	opts Options,
	authMiddleware func(http.Handler) http.Handler,
) (http.Handler, error) {
	r := mux.NewRouter()
	r.Use(authMiddleware)

	limitWrites := httprate.LimitByIP(opts.WriteRateLimit, opts.WriteRateWindow)
	write := func(h http.Handler) http.Handler {
		return limitWrites(requireAuthMiddleware(h))
	}

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Handle("/v1/sections", controller.SectionsList{
		CacheMaxAge: opts.CacheMaxAge,
	}).Methods(http.MethodGet)

	r.Handle("/v1/sections/{section}/{category}/recommendations", controller.CategoryList{
		ListCmd:     cmds.ListCategory,
		CacheMaxAge: opts.CacheMaxAge,
	}).Methods(http.MethodGet)

	r.Handle("/v1/sections/{section}/{category}/stream", controller.CategoryStream{
		Subscriber: subscriber,
	}).Methods(http.MethodGet)

	r.Handle("/v1/sections/{section}/{category}/rss", controller.CategoryRSS{
		FeedHostname:    opts.RSSFeedBaseURL,
		FeedAuthorName:  opts.RSSFeedAuthorName,
		FeedAuthorEmail: opts.RSSFeedAuthorEmail,
		ListCmd:         cmds.ListCategory,
		CacheMaxAge:     opts.CacheMaxAge,
	}).Methods(http.MethodGet)

	r.Handle("/v1/recommendations", write(controller.RecommendationCreate{
		SubmitCmd: cmds.SubmitRecommendation,
	})).Methods(http.MethodPost)

	r.Handle("/v1/recommendations/{recommendation_id}", controller.RecommendationGet{
		GetCmd: cmds.GetRecommendation,
	}).Methods(http.MethodGet)

	r.Handle("/v1/recommendations/{recommendation_id}/rating", write(controller.RatingSet{
		SetRatingCmd: cmds.SubmitRating,
	})).Methods(http.MethodPut)

	recommendSet := write(controller.RecommendSet{ToggleCmd: cmds.ToggleRecommend})
	r.Handle("/v1/recommendations/{recommendation_id}/recommend", recommendSet).Methods(http.MethodPost)
	r.Handle("/v1/recommendations/{recommendation_id}/recommend/{recommended}", recommendSet).
		Methods(http.MethodPut)

	r.Handle("/v1/recommendations/{recommendation_id}/comments", write(controller.CommentCreate{
		PostCmd: cmds.PostComment,
	})).Methods(http.MethodPost)

	// Anonymous shares are accepted and simply not recorded.
	r.Handle("/v1/recommendations/{recommendation_id}/shares", limitWrites(controller.ShareCreate{
		ShareCmd: cmds.RecordShare,
	})).Methods(http.MethodPost)

	r.Handle("/v1/profiles/{user_id}", controller.ProfileGet{
		GetCmd:      cmds.GetProfile,
		CacheMaxAge: opts.CacheMaxAge,
	}).Methods(http.MethodGet)

	r.Handle("/v1/profile", write(controller.ProfileSave{
		SaveCmd: cmds.SaveProfile,
	})).Methods(http.MethodPut)

	return corsMiddleware(opts.CORSAllowedOrigins)(r), nil
}
