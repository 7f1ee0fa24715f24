package command

import (
	"context"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type GetProfileRequest struct {
	UserID string
}

// GetProfile returns a user's public profile with their activity and totals.
type GetProfile struct {
	Querier datasources.RecordQuerier
}

func NewGetProfile(querier datasources.RecordQuerier) *GetProfile {
	return &GetProfile{Querier: querier}
}

func (c *GetProfile) Execute(ctx context.Context, req GetProfileRequest) (domain.Profile, error) {
	snap, err := c.Querier.Query(ctx, datasources.QuerySpec{
		domain.KindUser:           {"id": req.UserID},
		domain.KindRecommendation: {"userId": req.UserID},
		domain.KindComment:        {"userId": req.UserID},
		domain.KindRating:         {},
		domain.KindRecommend:      {},
	})
	if err != nil {
		return domain.Profile{}, fmt.Errorf("querying profile: %w", err)
	}

	user, ok := snap.FindUser(req.UserID)
	if !ok {
		return domain.Profile{}, &domain.NotFoundError{Kind: domain.KindUser, ID: req.UserID}
	}

	return domain.BuildProfile(user, snap), nil
}
