package command

import (
	"context"
	"strconv"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type SubmitRatingRequest struct {
	Identity         domain.Identity
	RecommendationID string
	Stars            int
}

// SubmitRating sets the signed-in user's star rating for a recommendation, creating the
// rating on first use and updating it in place afterwards.
type SubmitRating struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewSubmitRating(store datasources.Store, interlock *Interlock) *SubmitRating {
	return &SubmitRating{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *SubmitRating) Execute(ctx context.Context, req SubmitRatingRequest) (domain.Card, error) {
	if !req.Identity.Authenticated() {
		return domain.Card{}, &domain.AuthRequiredError{Action: "rate recommendations"}
	}
	if err := domain.ValidateStars(req.Stars); err != nil {
		return domain.Card{}, err
	}

	target := interlockKey(req.Identity.ID, req.RecommendationID)
	return runExclusive(ctx, c.Interlock, "rating", target, strconv.Itoa(req.Stars),
		func() (domain.Card, error) {
			return c.submit(ctx, req)
		})
}

func (c *SubmitRating) submit(ctx context.Context, req SubmitRatingRequest) (domain.Card, error) {
	logger := domain.LoggerFromContext(ctx).With("recommendation_id", req.RecommendationID)
	userID := req.Identity.ID

	snap, err := loadCard(ctx, c.Querier, req.RecommendationID)
	if err != nil {
		return domain.Card{}, err
	}

	idx := domain.NewInteractionIndex(snap.Ratings, snap.Recommends)

	var op datasources.Operation
	if existing, ok := idx.Rating(req.RecommendationID, userID); ok {
		op = datasources.Operation{
			Kind:   domain.KindRating,
			ID:     existing.ID,
			Op:     datasources.OpUpdate,
			Fields: datasources.Fields{"stars": req.Stars},
		}
	} else {
		id, now := c.Stamper.stamp()
		op, err = datasources.CreateOp(domain.Rating{
			ID:               id,
			RecommendationID: req.RecommendationID,
			UserID:           userID,
			Stars:            req.Stars,
			CreatedAt:        now,
		})
		if err != nil {
			return domain.Card{}, err
		}
	}

	if err := commit(ctx, c.Transactor, datasources.Batch{op}); err != nil {
		return domain.Card{}, err
	}
	logger.DebugContext(ctx, "submitted rating", "stars", req.Stars, "op", op.Op)

	return refreshCard(ctx, c.Querier, req.RecommendationID, userID)
}
