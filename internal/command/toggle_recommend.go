package command

import (
	"context"
	"strconv"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type ToggleRecommendRequest struct {
	Identity         domain.Identity
	RecommendationID string
	// Desired, when set, makes the request idempotent: the recommend is created or
	// removed only if the current state differs. When nil the state is flipped.
	Desired *bool
}

// ToggleRecommend adds or removes the signed-in user's recommend on a recommendation.
type ToggleRecommend struct {
	Querier    datasources.RecordQuerier
	Transactor datasources.Transactor
	Interlock  *Interlock
	Stamper    Stamper
}

func NewToggleRecommend(store datasources.Store, interlock *Interlock) *ToggleRecommend {
	return &ToggleRecommend{
		Querier:    store,
		Transactor: store,
		Interlock:  interlock,
		Stamper:    DefaultStamper(),
	}
}

func (c *ToggleRecommend) Execute(ctx context.Context, req ToggleRecommendRequest) (domain.Card, error) {
	if !req.Identity.Authenticated() {
		return domain.Card{}, &domain.AuthRequiredError{Action: "recommend"}
	}

	payload := "toggle"
	if req.Desired != nil {
		payload = strconv.FormatBool(*req.Desired)
	}

	target := interlockKey(req.Identity.ID, req.RecommendationID)
	return runExclusive(ctx, c.Interlock, "recommend", target, payload,
		func() (domain.Card, error) {
			return c.toggle(ctx, req)
		})
}

func (c *ToggleRecommend) toggle(ctx context.Context, req ToggleRecommendRequest) (domain.Card, error) {
	logger := domain.LoggerFromContext(ctx).With("recommendation_id", req.RecommendationID)
	userID := req.Identity.ID

	snap, err := loadCard(ctx, c.Querier, req.RecommendationID)
	if err != nil {
		return domain.Card{}, err
	}

	// A user should hold at most one recommend per recommendation, but removal clears
	// every one found so a duplicate cannot leave the card stuck on.
	var existing []domain.Recommend
	for _, r := range snap.Recommends {
		if r.RecommendationID == req.RecommendationID && r.UserID == userID {
			existing = append(existing, r)
		}
	}

	present := len(existing) > 0
	want := !present
	if req.Desired != nil {
		want = *req.Desired
	}
	if want == present {
		card, _ := domain.BuildCard(snap, req.RecommendationID, userID)
		return card, nil
	}

	var batch datasources.Batch
	if want {
		id, now := c.Stamper.stamp()
		op, err := datasources.CreateOp(domain.Recommend{
			ID:               id,
			RecommendationID: req.RecommendationID,
			UserID:           userID,
			CreatedAt:        now,
		})
		if err != nil {
			return domain.Card{}, err
		}
		batch = append(batch, op)
	} else {
		for _, r := range existing {
			batch = append(batch, datasources.Operation{
				Kind: domain.KindRecommend,
				ID:   r.ID,
				Op:   datasources.OpDelete,
			})
		}
	}

	if err := commit(ctx, c.Transactor, batch); err != nil {
		return domain.Card{}, err
	}
	logger.DebugContext(ctx, "set recommend", "recommended", want)

	return refreshCard(ctx, c.Querier, req.RecommendationID, userID)
}
