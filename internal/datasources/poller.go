package datasources

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/indiesound/artist-insights/internal/domain"
)

const DefaultPollInterval = 2 * time.Second

var _ Subscriber = (*Poller)(nil)

// Poller gives a store without change notifications a Subscriber by re-running the query
// on an interval and delivering the snapshot only when it differs from the last delivered.
type Poller struct {
	Querier  RecordQuerier
	Interval time.Duration
}

func NewPoller(querier RecordQuerier, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{Querier: querier, Interval: interval}
}

// Subscribe runs the first query before returning, so a store that is unreachable
// fails the subscription rather than a later poll. Poll errors after that are logged
// and retried on the next tick.
func (p *Poller) Subscribe(
	ctx context.Context,
	spec QuerySpec,
	fn func(domain.Snapshot),
) (Unsubscribe, error) {
	first, err := p.Querier.Query(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("running initial subscription query: %w", err)
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		logger := domain.LoggerFromContext(ctx)

		fn(first)
		last := first

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			snap, err := p.Querier.Query(ctx, spec)
			if err != nil {
				if ctx.Err() == nil {
					logger.WarnContext(ctx, "error polling subscription", "error", err)
				}
				continue
			}
			if reflect.DeepEqual(snap, last) {
				continue
			}
			last = snap
			fn(snap)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			<-done
		})
	}, nil
}
