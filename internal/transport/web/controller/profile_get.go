package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type ProfileGet struct {
	GetCmd      command.Command[command.GetProfileRequest, domain.Profile]
	CacheMaxAge time.Duration
}

func (c ProfileGet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("profile_user_id", userID))

	profile, err := c.GetCmd.Execute(ctx, command.GetProfileRequest{UserID: userID})
	if err != nil {
		writeError(ctx, w, err, "unable to fetch profile")
		return
	}

	// Email is only shown to its owner, and their view is not cacheable.
	maxAge := c.CacheMaxAge
	if domain.IdentityFromContext(ctx).ID == userID {
		maxAge = 0
	} else {
		profile.User.Email = ""
	}
	writeJSON(ctx, w, http.StatusOK, maxAge, profile)
}
