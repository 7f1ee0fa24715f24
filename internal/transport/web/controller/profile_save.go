package controller

import (
	"net/http"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

// ProfileSave creates or updates the signed-in user's own profile.
type ProfileSave struct {
	SaveCmd command.Command[command.SaveProfileRequest, domain.User]
}

func (c ProfileSave) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := domain.LoggerFromContext(ctx)

	var input domain.ProfileInput
	if err := decodeBody(r, &input); err != nil {
		logger.WarnContext(ctx, "unable to parse profile", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	user, err := c.SaveCmd.Execute(ctx, command.SaveProfileRequest{
		Identity: domain.IdentityFromContext(ctx),
		Profile:  input,
	})
	if err != nil {
		writeError(ctx, w, err, "failed to save profile")
		return
	}

	writeJSON(ctx, w, http.StatusOK, 0, user)
}
