package datasources

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/indiesound/artist-insights/internal/domain"
	"github.com/indiesound/artist-insights/internal/metrics"
)

var _ Store = (*BreakerStore)(nil)

// BreakerSettings configures when a BreakerStore stops sending calls to its store.
type BreakerSettings struct {
	Name string
	// MinRequests is the number of calls in an Interval before failures can trip the breaker.
	MinRequests uint32
	// FailureRatio at or above which the breaker trips.
	FailureRatio float64
	// Interval is the closed-state window after which counts reset.
	Interval time.Duration
	// Timeout is how long the breaker stays open before letting a trial call through.
	Timeout time.Duration
}

func DefaultBreakerSettings(name string) BreakerSettings {
	return BreakerSettings{
		Name:         name,
		MinRequests:  10,
		FailureRatio: 0.6,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
	}
}

// BreakerStore wraps a Store in a circuit breaker. While the circuit is open, calls fail
// immediately with gobreaker.ErrOpenState instead of reaching the store.
// Rejections and cancelled calls are not counted as store failures.
type BreakerStore struct {
	store Store
	name  string
	cb    *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(ctx context.Context, store Store, settings BreakerSettings) *BreakerStore {
	logger := domain.LoggerFromContext(ctx)

	metrics.CircuitBreakerState.WithLabelValues(settings.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        settings.Name,
		MaxRequests: 1,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < settings.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= settings.FailureRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrRejected) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("document store circuit breaker changed state",
				"store", name, "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return &BreakerStore{store: store, name: settings.Name, cb: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (b *BreakerStore) Query(ctx context.Context, spec QuerySpec) (domain.Snapshot, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return b.store.Query(ctx, spec)
	})
	metrics.StoreQueriesTotal.WithLabelValues(b.name, outcome(err)).Inc()
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("querying %s: %w", b.name, err)
	}

	snap, ok := res.(domain.Snapshot)
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("querying %s: unexpected result type %T", b.name, res)
	}
	return snap, nil
}

func (b *BreakerStore) Transact(ctx context.Context, batch Batch) error {
	_, err := b.cb.Execute(func() (any, error) {
		return nil, b.store.Transact(ctx, batch)
	})
	metrics.StoreWritesTotal.WithLabelValues(b.name, outcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("writing to %s: %w", b.name, err)
	}

	for _, op := range batch {
		metrics.StoreOperationsTotal.WithLabelValues(string(op.Kind), string(op.Op)).Inc()
	}
	return nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrRejected):
		return metrics.OutcomeRejected
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return metrics.OutcomeOpen
	default:
		return metrics.OutcomeFailure
	}
}

// State reports the breaker's current state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}
