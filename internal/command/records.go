package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

// Stamper assigns identifiers and creation times to new records.
type Stamper struct {
	Now   func() time.Time
	NewID func() string
}

func DefaultStamper() Stamper {
	return Stamper{Now: time.Now, NewID: uuid.NewString}
}

func (s Stamper) stamp() (string, int64) {
	now, newID := s.Now, s.NewID
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return newID(), domain.Millis(now())
}

// CardQuery selects everything needed to build one recommendation's card and thread.
func CardQuery(recommendationID string) datasources.QuerySpec {
	return datasources.QuerySpec{
		domain.KindRecommendation: {"id": recommendationID},
		domain.KindRating:         {"recommendationId": recommendationID},
		domain.KindRecommend:      {"recommendationId": recommendationID},
		domain.KindComment:        {"recommendationId": recommendationID},
		domain.KindUser:           {},
	}
}

// loadCard fetches a recommendation's card snapshot, failing with NotFoundError when the
// recommendation does not exist.
func loadCard(
	ctx context.Context,
	querier datasources.RecordQuerier,
	recommendationID string,
) (domain.Snapshot, error) {
	snap, err := querier.Query(ctx, CardQuery(recommendationID))
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("querying recommendation [%s]: %w", recommendationID, err)
	}
	if _, ok := snap.FindRecommendation(recommendationID); !ok {
		return domain.Snapshot{}, &domain.NotFoundError{Kind: domain.KindRecommendation, ID: recommendationID}
	}
	return snap, nil
}

// refreshCard re-reads a recommendation after a write and derives its card.
func refreshCard(
	ctx context.Context,
	querier datasources.RecordQuerier,
	recommendationID, viewerID string,
) (domain.Card, error) {
	snap, err := loadCard(ctx, querier, recommendationID)
	if err != nil {
		return domain.Card{}, err
	}
	card, _ := domain.BuildCard(snap, recommendationID, viewerID)
	return card, nil
}

// commit sends a batch as one transaction. Store failures are reported as
// RemoteWriteError; nothing in the batch was applied.
func commit(ctx context.Context, transactor datasources.Transactor, batch datasources.Batch) error {
	if err := transactor.Transact(ctx, batch); err != nil {
		return &domain.RemoteWriteError{Err: err}
	}
	return nil
}
