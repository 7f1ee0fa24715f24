package command

import (
	"context"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type SubmitRecommendationRequest struct {
	Identity domain.Identity
	Draft    domain.RecommendationDraft
}

// SubmitRecommendation validates a draft and stores it as a new recommendation.
type SubmitRecommendation struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewSubmitRecommendation(store datasources.Store, interlock *Interlock) *SubmitRecommendation {
	return &SubmitRecommendation{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *SubmitRecommendation) Execute(
	ctx context.Context,
	req SubmitRecommendationRequest,
) (domain.Card, error) {
	if !req.Identity.Authenticated() {
		return domain.Card{}, &domain.AuthRequiredError{Action: "submit recommendations"}
	}

	draft := req.Draft.Normalized()
	if err := domain.ValidateRecommendationDraft(draft); err != nil {
		return domain.Card{}, err
	}

	payload := interlockKey(draft.Section, draft.Category, draft.Title, draft.URL)
	return runExclusive(ctx, c.Interlock, "submit", req.Identity.ID, payload,
		func() (domain.Card, error) {
			return c.submit(ctx, req.Identity.ID, draft)
		})
}

func (c *SubmitRecommendation) submit(
	ctx context.Context,
	userID string,
	draft domain.RecommendationDraft,
) (domain.Card, error) {
	logger := domain.LoggerFromContext(ctx)

	id, now := c.Stamper.stamp()
	op, err := datasources.CreateOp(domain.Recommendation{
		ID:          id,
		UserID:      userID,
		Section:     draft.Section,
		Category:    draft.Category,
		Title:       draft.Title,
		Description: draft.Description,
		URL:         draft.URL,
		ImageURL:    draft.ImageURL,
		CreatedAt:   now,
	})
	if err != nil {
		return domain.Card{}, err
	}
	if err := commit(ctx, c.Transactor, datasources.Batch{op}); err != nil {
		return domain.Card{}, err
	}
	logger.DebugContext(ctx, "submitted recommendation",
		"recommendation_id", id, "section", draft.Section, "category", draft.Category)

	return refreshCard(ctx, c.Querier, id, userID)
}
