package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/indiesound/artist-insights/internal/datasources/memory"
	"github.com/indiesound/artist-insights/internal/datasources/mocks"
	"github.com/indiesound/artist-insights/internal/domain"
)

func TestCopyRecords_Execute(t *testing.T) {
	source := seededStore(t)
	ctx := testContext()
	_, err := NewSubmitRating(source, nil).Execute(ctx, SubmitRatingRequest{Identity: alice, RecommendationID: "rec1", Stars: 5})
	require.NoError(t, err)

	target := &countingStore{Store: memory.New()}
	cmd := NewCopyRecords(source, target)
	cmd.BatchSize = 2

	result, err := cmd.Execute(ctx, Empty{})
	require.NoError(t, err)
	assert.Equal(t, CopyRecordsResult{Copied: 4}, result)
	assert.Equal(t, int32(2), target.writes.Load())

	want := mustQuery(t, source, allKinds())
	got := mustQuery(t, target, allKinds())
	assert.ElementsMatch(t, want.Records(), got.Records())

	// A second run finds everything already present.
	result, err = cmd.Execute(ctx, Empty{})
	require.NoError(t, err)
	assert.Equal(t, CopyRecordsResult{Skipped: 4}, result)
	assert.Equal(t, int32(2), target.writes.Load())
}

func TestCopyRecords_TargetWriteFails(t *testing.T) {
	source := seededStore(t)
	target := mocks.NewMockStore(t)
	target.EXPECT().Query(mock.Anything, allKinds()).Return(domain.Snapshot{}, nil)
	target.EXPECT().Transact(mock.Anything, mock.AnythingOfType("datasources.Batch")).
		Return(errors.New("disk full"))

	result, err := NewCopyRecords(source, target).Execute(testContext(), Empty{})
	var rwErr *domain.RemoteWriteError
	require.ErrorAs(t, err, &rwErr)
	assert.Zero(t, result.Copied)
}

func TestCopyRecords_SourceQueryFails(t *testing.T) {
	source := mocks.NewMockStore(t)
	source.EXPECT().Query(mock.Anything, allKinds()).
		Return(domain.Snapshot{}, errors.New("unreachable"))

	_, err := NewCopyRecords(source, memory.New()).Execute(testContext(), Empty{})
	require.ErrorContains(t, err, "querying source store")
}
