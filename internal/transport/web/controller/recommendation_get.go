package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type RecommendationGet struct {
	GetCmd command.Command[command.GetRecommendationRequest, command.RecommendationDetail]
}

func (c RecommendationGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recommendation_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("recommendation_id", id))

	detail, err := c.GetCmd.Execute(ctx, command.GetRecommendationRequest{
		Viewer:           domain.IdentityFromContext(ctx),
		RecommendationID: id,
	})
	if err != nil {
		writeError(ctx, w, err, "unable to fetch recommendation")
		return
	}

	writeJSON(ctx, w, http.StatusOK, 0, detail)
}
