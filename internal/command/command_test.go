package command

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/datasources/memory"
	"github.com/indiesound/artist-insights/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testContext() context.Context {
	return domain.ContextWithLogger(context.Background(), testLogger())
}

var (
	alice = domain.Identity{ID: "alice", Email: "alice@example.com"}
	bob   = domain.Identity{ID: "bob", Email: "bob@example.com"}
)

// testStamper yields sequential IDs and a clock that advances a millisecond per call.
func testStamper() Stamper {
	var n atomic.Int64
	base := time.UnixMilli(1_700_000_000_000)
	return Stamper{
		Now:   func() time.Time { return base.Add(time.Duration(n.Load()) * time.Millisecond) },
		NewID: func() string { return fmt.Sprintf("id-%d", n.Add(1)) },
	}
}

// seededStore returns a memory store holding two users and one recommendation, "rec1".
func seededStore(t *testing.T) *memory.Store {
	t.Helper()

	store := memory.New()
	var batch datasources.Batch
	for _, rec := range []domain.Record{
		domain.User{ID: "alice", Email: "alice@example.com", Username: "alice", CreatedAt: 1},
		domain.User{ID: "bob", Email: "bob@example.com", Username: "bob", CreatedAt: 2},
		domain.Recommendation{
			ID: "rec1", UserID: "bob", Section: "community-management", Category: "discord-setup",
			Title: "Carl-bot", Description: "Reaction roles for your server", CreatedAt: 3,
		},
	} {
		op, err := datasources.CreateOp(rec)
		require.NoError(t, err)
		batch = append(batch, op)
	}
	require.NoError(t, store.Transact(testContext(), batch))

	return store
}

// countingStore wraps a store and counts write batches.
type countingStore struct {
	datasources.Store
	writes atomic.Int32
	// gate, when set, blocks every write until closed.
	gate chan struct{}
}

func (s *countingStore) Transact(ctx context.Context, batch datasources.Batch) error {
	s.writes.Add(1)
	if s.gate != nil {
		<-s.gate
	}
	return s.Store.Transact(ctx, batch)
}
