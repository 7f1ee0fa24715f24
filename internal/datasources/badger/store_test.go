package badger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return New(db)
}

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), slog.New(slog.DiscardHandler))
}

func mustCreate(t *testing.T, rec domain.Record) datasources.Operation {
	t.Helper()
	op, err := datasources.CreateOp(rec)
	require.NoError(t, err)
	return op
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := testContext()

	user := domain.User{
		ID: "u1", Email: "dj@example.com", Username: "dj",
		SocialLinks: domain.SocialLinks{SoundcloudURL: "https://soundcloud.com/dj"},
		CreatedAt:   1700000000000,
	}
	rec := domain.Recommendation{
		ID: "rec1", UserID: "u1", Section: "learning-resources", Category: "youtube-channels",
		Title: "In The Mix", Description: "Mixing tutorials", URL: "https://youtube.com/@inthemix",
		CreatedAt: 1700000000001,
	}
	require.NoError(t, s.Transact(ctx, datasources.Batch{mustCreate(t, user), mustCreate(t, rec)}))

	snap, err := s.Query(ctx, datasources.QuerySpec{
		domain.KindUser:           {"id": "u1"},
		domain.KindRecommendation: {"section": "learning-resources"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.User{user}, snap.Users)
	assert.Equal(t, []domain.Recommendation{rec}, snap.Recommendations)
}

func TestStore_BatchIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := testContext()

	err := s.Transact(ctx, datasources.Batch{
		mustCreate(t, domain.Share{ID: "s1", RecommendationID: "rec1", UserID: "u1"}),
		{Kind: domain.KindShare, ID: "s1", Op: datasources.OpDelete},
	})
	require.ErrorIs(t, err, datasources.ErrRejected)

	snap, err := s.Query(ctx, datasources.QuerySpec{domain.KindShare: {}})
	require.NoError(t, err)
	assert.Empty(t, snap.Shares)
}

func TestStore_ToggleRecommend(t *testing.T) {
	s := newTestStore(t)
	ctx := testContext()
	recommend := domain.Recommend{ID: "x1", RecommendationID: "rec1", UserID: "u1", CreatedAt: 5}

	require.NoError(t, s.Transact(ctx, datasources.Batch{mustCreate(t, recommend)}))
	snap, err := s.Query(ctx, datasources.QuerySpec{domain.KindRecommend: {"userId": "u1"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Recommend{recommend}, snap.Recommends)

	require.NoError(t, s.Transact(ctx, datasources.Batch{{Kind: domain.KindRecommend, ID: "x1", Op: datasources.OpDelete}}))
	// Deleting again is a no-op.
	require.NoError(t, s.Transact(ctx, datasources.Batch{{Kind: domain.KindRecommend, ID: "x1", Op: datasources.OpDelete}}))

	snap, err = s.Query(ctx, datasources.QuerySpec{domain.KindRecommend: {}})
	require.NoError(t, err)
	assert.Empty(t, snap.Recommends)
}

func TestStore_UpdateRating(t *testing.T) {
	s := newTestStore(t)
	ctx := testContext()

	require.NoError(t, s.Transact(ctx, datasources.Batch{
		mustCreate(t, domain.Rating{ID: "r1", RecommendationID: "rec1", UserID: "u1", Stars: 1, CreatedAt: 9}),
	}))
	require.NoError(t, s.Transact(ctx, datasources.Batch{
		{Kind: domain.KindRating, ID: "r1", Op: datasources.OpUpdate, Fields: datasources.Fields{"stars": 5}},
	}))

	snap, err := s.Query(ctx, datasources.QuerySpec{domain.KindRating: {"recommendationId": "rec1"}})
	require.NoError(t, err)
	assert.Equal(t, []domain.Rating{{ID: "r1", RecommendationID: "rec1", UserID: "u1", Stars: 5, CreatedAt: 9}}, snap.Ratings)
}
