package command

import (
	"context"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type PostCommentRequest struct {
	Identity         domain.Identity
	RecommendationID string
	Text             string
}

// PostComment appends a comment to a recommendation and returns the updated thread,
// newest first.
type PostComment struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewPostComment(store datasources.Store, interlock *Interlock) *PostComment {
	return &PostComment{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *PostComment) Execute(ctx context.Context, req PostCommentRequest) ([]domain.CommentView, error) {
	if !req.Identity.Authenticated() {
		return nil, &domain.AuthRequiredError{Action: "comment"}
	}
	text, err := domain.NormalizeCommentText(req.Text)
	if err != nil {
		return nil, err
	}

	target := interlockKey(req.Identity.ID, req.RecommendationID)
	return runExclusive(ctx, c.Interlock, "comment", target, text,
		func() ([]domain.CommentView, error) {
			return c.post(ctx, req.Identity.ID, req.RecommendationID, text)
		})
}

func (c *PostComment) post(
	ctx context.Context,
	userID, recommendationID, text string,
) ([]domain.CommentView, error) {
	logger := domain.LoggerFromContext(ctx).With("recommendation_id", recommendationID)

	if _, err := loadCard(ctx, c.Querier, recommendationID); err != nil {
		return nil, err
	}

	id, now := c.Stamper.stamp()
	op, err := datasources.CreateOp(domain.Comment{
		ID:               id,
		RecommendationID: recommendationID,
		UserID:           userID,
		Content:          text,
		CreatedAt:        now,
	})
	if err != nil {
		return nil, err
	}
	if err := commit(ctx, c.Transactor, datasources.Batch{op}); err != nil {
		return nil, err
	}
	logger.DebugContext(ctx, "posted comment", "comment_id", id)

	snap, err := c.Querier.Query(ctx, datasources.QuerySpec{
		domain.KindComment: {"recommendationId": recommendationID},
		domain.KindUser:    {},
	})
	if err != nil {
		return nil, fmt.Errorf("querying comment thread: %w", err)
	}
	return domain.BuildThread(snap, recommendationID), nil
}
