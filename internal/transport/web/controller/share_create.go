package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

// ShareCreate records a share. Anonymous shares are accepted and not recorded.
type ShareCreate struct {
	ShareCmd command.Command[command.RecordShareRequest, command.Empty]
}

func (c ShareCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recommendation_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("recommendation_id", id))

	if _, err := c.ShareCmd.Execute(ctx, command.RecordShareRequest{
		Identity:         domain.IdentityFromContext(ctx),
		RecommendationID: id,
	}); err != nil {
		writeError(ctx, w, err, "failed to record share")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
