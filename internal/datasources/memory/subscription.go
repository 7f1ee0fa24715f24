package memory

import (
	"context"
	"sync"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

// subscription delivers queued snapshots to its callback from its own goroutine, so a
// slow subscriber holds up neither writers nor other subscribers.
type subscription struct {
	spec datasources.QuerySpec
	fn   func(domain.Snapshot)

	// last is owned by the store and guarded by its mutex.
	last domain.Snapshot

	mu      sync.Mutex
	pending []domain.Snapshot
	wake    chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

func newSubscription(spec datasources.QuerySpec, fn func(domain.Snapshot)) *subscription {
	return &subscription{
		spec: spec,
		fn:   fn,
		wake: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (s *subscription) push(snap domain.Snapshot) {
	s.mu.Lock()
	s.pending = append(s.pending, snap)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *subscription) run(ctx context.Context) {
	defer close(s.done)

	for {
		s.mu.Lock()
		queued := s.pending
		s.pending = nil
		s.mu.Unlock()

		for _, snap := range queued {
			select {
			case <-s.quit:
				return
			case <-ctx.Done():
				return
			default:
			}
			s.fn(snap)
		}

		select {
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		case <-s.wake:
		}
	}
}

func (s *subscription) stop() {
	close(s.quit)
	<-s.done
}
