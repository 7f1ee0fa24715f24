package command

import (
	"context"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type GetRecommendationRequest struct {
	Viewer           domain.Identity
	RecommendationID string
}

// RecommendationDetail is one recommendation's card with its comment thread.
type RecommendationDetail struct {
	Card     domain.Card          `json:"card"`
	Comments []domain.CommentView `json:"comments"`
}

type GetRecommendation struct {
	Querier datasources.RecordQuerier
}

func NewGetRecommendation(querier datasources.RecordQuerier) *GetRecommendation {
	return &GetRecommendation{Querier: querier}
}

func (c *GetRecommendation) Execute(
	ctx context.Context,
	req GetRecommendationRequest,
) (RecommendationDetail, error) {
	snap, err := loadCard(ctx, c.Querier, req.RecommendationID)
	if err != nil {
		return RecommendationDetail{}, err
	}

	card, _ := domain.BuildCard(snap, req.RecommendationID, req.Viewer.ID)
	return RecommendationDetail{
		Card:     card,
		Comments: domain.BuildThread(snap, req.RecommendationID),
	}, nil
}
