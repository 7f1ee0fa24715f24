package command

import (
	"context"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type RecordShareRequest struct {
	Identity         domain.Identity
	RecommendationID string
}

// RecordShare logs that a user shared a recommendation. Shares by anonymous visitors are
// not recorded and succeed without touching the store.
type RecordShare struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewRecordShare(store datasources.Store, interlock *Interlock) *RecordShare {
	return &RecordShare{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *RecordShare) Execute(ctx context.Context, req RecordShareRequest) (Empty, error) {
	logger := domain.LoggerFromContext(ctx).With("recommendation_id", req.RecommendationID)

	if !req.Identity.Authenticated() {
		logger.DebugContext(ctx, "not recording anonymous share")
		return Empty{}, nil
	}

	target := interlockKey(req.Identity.ID, req.RecommendationID)
	return runExclusive(ctx, c.Interlock, "share", target, "", func() (Empty, error) {
		snap, err := c.Querier.Query(ctx, datasources.QuerySpec{
			domain.KindRecommendation: {"id": req.RecommendationID},
		})
		if err != nil {
			return Empty{}, err
		}
		if _, ok := snap.FindRecommendation(req.RecommendationID); !ok {
			return Empty{}, &domain.NotFoundError{Kind: domain.KindRecommendation, ID: req.RecommendationID}
		}

		id, now := c.Stamper.stamp()
		op, err := datasources.CreateOp(domain.Share{
			ID:               id,
			RecommendationID: req.RecommendationID,
			UserID:           req.Identity.ID,
			CreatedAt:        now,
		})
		if err != nil {
			return Empty{}, err
		}
		if err := commit(ctx, c.Transactor, datasources.Batch{op}); err != nil {
			return Empty{}, err
		}

		logger.DebugContext(ctx, "recorded share")
		return Empty{}, nil
	})
}
