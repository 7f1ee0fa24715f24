package command

import (
	"context"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

type ListCategoryRequest struct {
	Viewer   domain.Identity
	Section  string
	Category string
	Sort     string
}

// CategoryListing is a category page: its place in the taxonomy and its sorted cards.
type CategoryListing struct {
	Section  domain.Section  `json:"section"`
	Category domain.Category `json:"category"`
	Sort     domain.SortKey  `json:"sort"`
	Cards    []domain.Card   `json:"cards"`
}

// CategoryQuery selects everything needed to build a category's cards.
func CategoryQuery(section, category string) datasources.QuerySpec {
	return datasources.QuerySpec{
		domain.KindRecommendation: {"section": section, "category": category},
		domain.KindRating:         {},
		domain.KindRecommend:      {},
		domain.KindComment:        {},
		domain.KindUser:           {},
	}
}

// BuildCategoryListing derives a category page from a snapshot fetched with CategoryQuery.
func BuildCategoryListing(
	snap domain.Snapshot,
	section domain.Section,
	category domain.Category,
	sort domain.SortKey,
	viewerID string,
) (CategoryListing, error) {
	snap.Recommendations = domain.FilterByCategory(snap.Recommendations, section.Key, category.Key)

	cards, err := domain.BuildCards(snap, sort, viewerID)
	if err != nil {
		return CategoryListing{}, err
	}

	// Serve the section without its category list; the taxonomy endpoint carries that.
	section.Categories = nil
	return CategoryListing{Section: section, Category: category, Sort: sort, Cards: cards}, nil
}

// ListCategory returns the sorted recommendation cards of one category.
type ListCategory struct {
	Querier datasources.RecordQuerier
}

func NewListCategory(querier datasources.RecordQuerier) *ListCategory {
	return &ListCategory{Querier: querier}
}

func (c *ListCategory) Execute(ctx context.Context, req ListCategoryRequest) (CategoryListing, error) {
	section, category, err := domain.LookupCategory(req.Section, req.Category)
	if err != nil {
		return CategoryListing{}, err
	}
	sort, err := domain.ParseSortKey(req.Sort)
	if err != nil {
		return CategoryListing{}, err
	}

	snap, err := c.Querier.Query(ctx, CategoryQuery(section.Key, category.Key))
	if err != nil {
		return CategoryListing{}, fmt.Errorf("querying category %s/%s: %w", section.Key, category.Key, err)
	}

	return BuildCategoryListing(snap, section, category, sort, req.Viewer.ID)
}
