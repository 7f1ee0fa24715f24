package command

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/datasources/mocks"
	"github.com/indiesound/artist-insights/internal/domain"
)

func TestSubmitRating_Execute(t *testing.T) {
	cases := []struct {
		name      string
		req       SubmitRatingRequest
		wantErrAs any
	}{
		{
			name:      "anonymous",
			req:       SubmitRatingRequest{RecommendationID: "rec1", Stars: 4},
			wantErrAs: new(*domain.AuthRequiredError),
		},
		{
			name:      "zero_stars",
			req:       SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 0},
			wantErrAs: new(*domain.ValidationError),
		},
		{
			name:      "six_stars",
			req:       SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 6},
			wantErrAs: new(*domain.ValidationError),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// No expectations: any store call fails the test.
			store := mocks.NewMockStore(t)
			cmd := NewSubmitRating(store, NewInterlock())

			_, err := cmd.Execute(testContext(), tc.req)
			require.ErrorAs(t, err, tc.wantErrAs)
		})
	}
}

func TestSubmitRating_FirstRatingThenUpdate(t *testing.T) {
	store := seededStore(t)
	cmd := NewSubmitRating(store, NewInterlock())
	cmd.Stamper = testStamper()
	ctx := testContext()

	before, ok := domain.BuildCard(mustQuery(t, store, CardQuery("rec1")), "rec1", "alice")
	require.True(t, ok)
	assert.Nil(t, before.AverageRating)
	assert.Equal(t, "No ratings", before.AverageLabel)

	card, err := cmd.Execute(ctx, SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 4})
	require.NoError(t, err)
	require.NotNil(t, card.AverageRating)
	assert.InDelta(t, 4.0, *card.AverageRating, 0)
	assert.Equal(t, domain.CardState{HasRating: true, Stars: 4}, card.Viewer)

	card, err = cmd.Execute(ctx, SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 2})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, *card.AverageRating, 0)
	assert.Equal(t, 1, card.RatingCount)

	card, err = cmd.Execute(ctx, SubmitRatingRequest{Identity: bob, RecommendationID: "rec1", Stars: 5})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, *card.AverageRating, 0)
	assert.Equal(t, 2, card.RatingCount)
	assert.Equal(t, domain.CardState{HasRating: true, Stars: 5}, card.Viewer)

	snap := mustQuery(t, store, datasources.QuerySpec{domain.KindRating: {"userId": "alice"}})
	require.Len(t, snap.Ratings, 1)
	assert.Equal(t, 2, snap.Ratings[0].Stars)
}

func TestSubmitRating_UnknownRecommendation(t *testing.T) {
	cmd := NewSubmitRating(seededStore(t), NewInterlock())

	_, err := cmd.Execute(testContext(), SubmitRatingRequest{Identity: alice, RecommendationID: "nope", Stars: 3})
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindRecommendation, nf.Kind)
}

func TestSubmitRating_RemoteWriteError(t *testing.T) {
	snap := domain.Snapshot{Recommendations: []domain.Recommendation{{ID: "rec1"}}}
	store := mocks.NewMockStore(t)
	store.EXPECT().Query(mock.Anything, CardQuery("rec1")).Return(snap, nil).Once()
	store.EXPECT().Transact(mock.Anything, mock.Anything).Return(errors.New("network down")).Once()

	cmd := NewSubmitRating(store, nil)
	_, err := cmd.Execute(testContext(), SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 3})

	var rwErr *domain.RemoteWriteError
	require.ErrorAs(t, err, &rwErr)
	assert.EqualError(t, rwErr.Unwrap(), "network down")
}

func TestSubmitRating_DoubleSubmitWritesOnce(t *testing.T) {
	store := &countingStore{Store: seededStore(t), gate: make(chan struct{})}
	cmd := NewSubmitRating(store, NewInterlock())
	req := SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 5}

	var wg sync.WaitGroup
	results := make([]domain.Card, 3)
	errs := make([]error, 3)
	for i := range 3 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = cmd.Execute(testContext(), req)
		}()
	}

	// Let the first caller reach the write and the others join it.
	require.Eventually(t, func() bool { return store.writes.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(store.gate)
	wg.Wait()

	for i := range 3 {
		require.NoError(t, errs[i])
		assert.Equal(t, 1, results[i].RatingCount)
	}
	snap := mustQuery(t, store, datasources.QuerySpec{domain.KindRating: {}})
	assert.Len(t, snap.Ratings, 1)
}

func TestSubmitRating_ConcurrentDifferentStarsKeepsOneRating(t *testing.T) {
	store := seededStore(t)
	cmd := NewSubmitRating(store, NewInterlock())

	var wg sync.WaitGroup
	for stars := 1; stars <= 5; stars++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cmd.Execute(testContext(), SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: stars})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap := mustQuery(t, store, datasources.QuerySpec{domain.KindRating: {}})
	assert.Len(t, snap.Ratings, 1)
}

func mustQuery(t *testing.T, q datasources.RecordQuerier, spec datasources.QuerySpec) domain.Snapshot {
	t.Helper()
	snap, err := q.Query(testContext(), spec)
	require.NoError(t, err)
	return snap
}
