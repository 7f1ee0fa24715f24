package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

// RecommendSet flips the viewer's recommend, or sets it explicitly when the route carries
// a {recommended} value of "true" or "false".
type RecommendSet struct {
	ToggleCmd command.Command[command.ToggleRecommendRequest, domain.Card]
}

func (c RecommendSet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["recommendation_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("recommendation_id", id))

	req := command.ToggleRecommendRequest{
		Identity:         domain.IdentityFromContext(ctx),
		RecommendationID: id,
	}

	if value, ok := vars["recommended"]; ok {
		var desired bool
		switch value {
		case boolTrue:
			desired = true
		case boolFalse:
			desired = false
		default:
			logger.ErrorContext(ctx, "invalid recommended value", "value", value)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		req.Desired = &desired
	}

	card, err := c.ToggleCmd.Execute(ctx, req)
	if err != nil {
		writeError(ctx, w, err, "failed to set recommend")
		return
	}

	writeJSON(ctx, w, http.StatusOK, 0, card)
}
