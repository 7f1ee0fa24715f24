package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type RatingSet struct {
	SetRatingCmd command.Command[command.SubmitRatingRequest, domain.Card]
}

type RatingSetRequest struct {
	Stars int `json:"stars"`
}

func (c RatingSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recommendation_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("recommendation_id", id))

	var body RatingSetRequest
	if err := decodeBody(r, &body); err != nil {
		logger.WarnContext(ctx, "unable to parse rating", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	card, err := c.SetRatingCmd.Execute(ctx, command.SubmitRatingRequest{
		Identity:         domain.IdentityFromContext(ctx),
		RecommendationID: id,
		Stars:            body.Stars,
	})
	if err != nil {
		writeError(ctx, w, err, "failed to set rating")
		return
	}

	writeJSON(ctx, w, http.StatusOK, 0, card)
}
