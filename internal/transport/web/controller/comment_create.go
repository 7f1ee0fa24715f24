package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type CommentCreate struct {
	PostCmd command.Command[command.PostCommentRequest, []domain.CommentView]
}

type CommentCreateRequest struct {
	Content string `json:"content"`
}

type CommentCreateResponse struct {
	Data []domain.CommentView `json:"data"`
}

func (c CommentCreate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["recommendation_id"]
	logger := domain.LoggerFromContext(r.Context())
	ctx := domain.ContextWithLogger(r.Context(), logger.With("recommendation_id", id))

	var body CommentCreateRequest
	if err := decodeBody(r, &body); err != nil {
		logger.WarnContext(ctx, "unable to parse comment", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	thread, err := c.PostCmd.Execute(ctx, command.PostCommentRequest{
		Identity:         domain.IdentityFromContext(ctx),
		RecommendationID: id,
		Text:             body.Content,
	})
	if err != nil {
		writeError(ctx, w, err, "failed to post comment")
		return
	}

	writeJSON(ctx, w, http.StatusCreated, 0, CommentCreateResponse{Data: thread})
}
