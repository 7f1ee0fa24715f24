package domain

import (
	"cmp"
	"slices"
)

// ProfileStats are the totals shown on a user's public profile.
type ProfileStats struct {
	Recommendations       int      `json:"recommendations"`
	Comments              int      `json:"comments"`
	RecommendsReceived    int      `json:"recommendsReceived"`
	AverageRatingReceived *float64 `json:"averageRatingReceived"`
	AverageLabel          string   `json:"averageLabel"`
}

// ComputeProfileStats totals a user's activity. The received average is the mean over
// ratings of that user's own recommendations, and is absent when there are none.
func ComputeProfileStats(userID string, snap Snapshot) ProfileStats {
	owned := make(map[string]struct{})
	for _, r := range snap.Recommendations {
		if r.UserID == userID {
			owned[r.ID] = struct{}{}
		}
	}

	stats := ProfileStats{Recommendations: len(owned)}
	for _, c := range snap.Comments {
		if c.UserID == userID {
			stats.Comments++
		}
	}
	for _, r := range snap.Recommends {
		if _, ok := owned[r.RecommendationID]; ok {
			stats.RecommendsReceived++
		}
	}

	sum, count := 0, 0
	for _, r := range snap.Ratings {
		if _, ok := owned[r.RecommendationID]; ok {
			sum += r.Stars
			count++
		}
	}
	var avg float64
	if count > 0 {
		avg = float64(sum) / float64(count)
		stats.AverageRatingReceived = &avg
	}
	stats.AverageLabel = FormatAverage(avg, count > 0)

	return stats
}

// Profile is the public view of a user.
type Profile struct {
	User            User             `json:"user"`
	Recommendations []Recommendation `json:"recommendations"`
	Comments        []Comment        `json:"comments"`
	Stats           ProfileStats     `json:"stats"`
}

// BuildProfile assembles a user's profile from a snapshot, newest items first.
func BuildProfile(user User, snap Snapshot) Profile {
	var recs []Recommendation
	for _, r := range snap.Recommendations {
		if r.UserID == user.ID {
			recs = append(recs, r)
		}
	}
	slices.SortStableFunc(recs, func(a, b Recommendation) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	var comments []Comment
	for _, c := range snap.Comments {
		if c.UserID == user.ID {
			comments = append(comments, c)
		}
	}
	slices.SortStableFunc(comments, func(a, b Comment) int {
		return cmp.Compare(b.CreatedAt, a.CreatedAt)
	})

	return Profile{
		User:            user,
		Recommendations: recs,
		Comments:        comments,
		Stats:           ComputeProfileStats(user.ID, snap),
	}
}
