package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiesound/artist-insights/internal/domain"
)

func TestGetProfile_Execute(t *testing.T) {
	store := seededStore(t)
	ctx := testContext()

	_, err := NewSubmitRating(store, nil).Execute(ctx, SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 4})
	require.NoError(t, err)
	_, err = NewToggleRecommend(store, nil).Execute(ctx, ToggleRecommendRequest{Identity: alice, RecommendationID: "rec1"})
	require.NoError(t, err)
	_, err = NewPostComment(store, nil).Execute(ctx, PostCommentRequest{Identity: alice, RecommendationID: "rec1", Text: "nice"})
	require.NoError(t, err)

	profile, err := NewGetProfile(store).Execute(ctx, GetProfileRequest{UserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.User.Username)
	require.Len(t, profile.Recommendations, 1)
	assert.Empty(t, profile.Comments)
	assert.Equal(t, 1, profile.Stats.Recommendations)
	assert.Equal(t, 1, profile.Stats.RecommendsReceived)
	assert.Equal(t, "4.0", profile.Stats.AverageLabel)

	profile, err = NewGetProfile(store).Execute(ctx, GetProfileRequest{UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Stats.Comments)
	assert.Equal(t, 0, profile.Stats.Recommendations)
	assert.Nil(t, profile.Stats.AverageRatingReceived)
}

func TestGetProfile_NotFound(t *testing.T) {
	_, err := NewGetProfile(seededStore(t)).Execute(testContext(), GetProfileRequest{UserID: "nobody"})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindUser, nf.Kind)
}
