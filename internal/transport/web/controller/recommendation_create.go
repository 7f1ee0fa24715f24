package controller

import (
	"net/http"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type RecommendationCreate struct {
	SubmitCmd command.Command[command.SubmitRecommendationRequest, domain.Card]
}

func (c RecommendationCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var draft domain.RecommendationDraft
	if err := decodeBody(r, &draft); err != nil {
		logger.WarnContext(ctx, "unable to parse recommendation", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	card, err := c.SubmitCmd.Execute(ctx, command.SubmitRecommendationRequest{
		Identity: domain.IdentityFromContext(ctx),
		Draft:    draft,
	})
	if err != nil {
		writeError(ctx, w, err, "unable to submit recommendation")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, 0, card)
}
