package command

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/indiesound/artist-insights/internal/domain"
	"github.com/indiesound/artist-insights/internal/metrics"
)

// Interlock stops a double-submitted action from producing two writes.
//
// Identical in-flight actions (same action, target and payload) share one execution and
// all callers receive its result. Different actions on the same target run one at a
// time, so a read-then-write never races another write to the same record.
type Interlock struct {
	flights singleflight.Group

	mu    sync.Mutex
	locks map[string]*targetLock
}

type targetLock struct {
	mu   sync.Mutex
	refs int
}

func NewInterlock() *Interlock {
	return &Interlock{locks: make(map[string]*targetLock)}
}

func (l *Interlock) lock(target string) func() {
	l.mu.Lock()
	tl, ok := l.locks[target]
	if !ok {
		tl = &targetLock{}
		l.locks[target] = tl
	}
	tl.refs++
	l.mu.Unlock()

	tl.mu.Lock()

	return func() {
		tl.mu.Unlock()

		l.mu.Lock()
		tl.refs--
		if tl.refs == 0 {
			delete(l.locks, target)
		}
		l.mu.Unlock()
	}
}

func interlockKey(parts ...string) string {
	return strings.Join(parts, "|")
}

// runExclusive runs fn under the interlock. A nil interlock runs fn directly.
func runExclusive[T any](
	ctx context.Context,
	l *Interlock,
	action, target, payload string,
	fn func() (T, error),
) (T, error) {
	if l == nil {
		res, err := fn()
		if err != nil {
			var zero T
			return zero, err
		}
		return res, nil
	}

	targetKey := interlockKey(action, target)
	v, err, shared := l.flights.Do(interlockKey(targetKey, payload), func() (any, error) {
		unlock := l.lock(targetKey)
		defer unlock()
		return fn()
	})
	if shared {
		metrics.InterlockSharedTotal.WithLabelValues(action).Inc()
		domain.LoggerFromContext(ctx).DebugContext(ctx, "joined in-flight action",
			"action", action, "target", target)
	}
	if err != nil {
		var zero T
		return zero, err
	}

	res, _ := v.(T)
	return res, nil
}
