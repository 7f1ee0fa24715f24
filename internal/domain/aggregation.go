package domain

import (
	"cmp"
	"fmt"
	"slices"
)

// SortKey selects the display ordering of a list of recommendations.
type SortKey string

const (
	SortNewest          SortKey = "newest"
	SortHighestRated    SortKey = "highest-rated"
	SortMostRecommended SortKey = "most-recommended"
)

var ValidSortKeys = []SortKey{
	SortNewest,
	SortHighestRated,
	SortMostRecommended,
}

// ParseSortKey parses a sort key, defaulting to newest when s is empty.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortNewest, nil
	}
	if !slices.Contains(ValidSortKeys, SortKey(s)) {
		return "", &ValidationError{
			Field:   "sort",
			Rule:    "oneof",
			Message: fmt.Sprintf("unrecognised sort key: %s", s),
		}
	}
	return SortKey(s), nil
}

// AverageRating returns the mean stars over ratings for the recommendation.
// ok is false when the recommendation has no ratings; that is distinct from any average.
func AverageRating(recommendationID string, ratings []Rating) (avg float64, ok bool) {
	sum, count := 0, 0
	for _, r := range ratings {
		if r.RecommendationID == recommendationID {
			sum += r.Stars
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(sum) / float64(count), true
}

func RatingCount(recommendationID string, ratings []Rating) int {
	n := 0
	for _, r := range ratings {
		if r.RecommendationID == recommendationID {
			n++
		}
	}
	return n
}

func RecommendCount(recommendationID string, recommends []Recommend) int {
	n := 0
	for _, r := range recommends {
		if r.RecommendationID == recommendationID {
			n++
		}
	}
	return n
}

func CommentCount(recommendationID string, comments []Comment) int {
	n := 0
	for _, c := range comments {
		if c.RecommendationID == recommendationID {
			n++
		}
	}
	return n
}

func ShareCount(recommendationID string, shares []Share) int {
	n := 0
	for _, s := range shares {
		if s.RecommendationID == recommendationID {
			n++
		}
	}
	return n
}

// FormatAverage renders an average for display, distinguishing "no ratings" from a value.
func FormatAverage(avg float64, ok bool) string {
	if !ok {
		return "No ratings"
	}
	return fmt.Sprintf("%.1f", avg)
}

// ratingTotals accumulates stars per recommendation in a single pass.
type ratingTotals struct {
	sum, count int
}

func averagesByRecommendation(ratings []Rating) map[string]float64 {
	totals := make(map[string]ratingTotals)
	for _, r := range ratings {
		t := totals[r.RecommendationID]
		t.sum += r.Stars
		t.count++
		totals[r.RecommendationID] = t
	}

	avgs := make(map[string]float64, len(totals))
	for id, t := range totals {
		avgs[id] = float64(t.sum) / float64(t.count)
	}
	return avgs
}

func recommendCountsByRecommendation(recommends []Recommend) map[string]int {
	counts := make(map[string]int)
	for _, r := range recommends {
		counts[r.RecommendationID]++
	}
	return counts
}

// SortRecommendations returns a new, stably sorted slice; the input is left untouched.
// Recommendations without ratings order as if their average were zero.
func SortRecommendations(
	recommendations []Recommendation,
	key SortKey,
	ratings []Rating,
	recommends []Recommend,
) ([]Recommendation, error) {
	sorted := slices.Clone(recommendations)

	switch key {
	case SortNewest:
		slices.SortStableFunc(sorted, func(a, b Recommendation) int {
			return cmp.Compare(b.CreatedAt, a.CreatedAt)
		})
	case SortHighestRated:
		avgs := averagesByRecommendation(ratings)
		slices.SortStableFunc(sorted, func(a, b Recommendation) int {
			return cmp.Compare(avgs[b.ID], avgs[a.ID])
		})
	case SortMostRecommended:
		counts := recommendCountsByRecommendation(recommends)
		slices.SortStableFunc(sorted, func(a, b Recommendation) int {
			return cmp.Compare(counts[b.ID], counts[a.ID])
		})
	default:
		return nil, fmt.Errorf("unknown sort key: %s", key)
	}

	return sorted, nil
}

// FilterByCategory returns the recommendations filed under the given section and category.
func FilterByCategory(recommendations []Recommendation, section, category string) []Recommendation {
	var out []Recommendation
	for _, r := range recommendations {
		if r.Section == section && r.Category == category {
			out = append(out, r)
		}
	}
	return out
}

// CommentsNewestFirst returns the comment thread of a recommendation, newest first.
func CommentsNewestFirst(recommendationID string, comments []Comment) []Comment {
	var thread []Comment
	for _, c := range comments {
		if c.RecommendationID == recommendationID {
			thread = append(thread, c)
		}
	}
	slices.SortStableFunc(thread, func(a, b Comment) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})
	return thread
}
