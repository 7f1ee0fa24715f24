// Package memory is an in-process document store. It keeps every record in memory and
// pushes snapshot changes to subscribers as batches commit.
package memory

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

var _ datasources.LiveStore = (*Store)(nil)

type collection struct {
	order []string
	docs  map[string]datasources.Fields
}

func (c collection) clone() collection {
	return collection{
		order: slices.Clone(c.order),
		docs:  maps.Clone(c.docs),
	}
}

type Store struct {
	mu          sync.RWMutex
	collections map[domain.Kind]collection
	subs        map[int]*subscription
	nextSubID   int
}

func New() *Store {
	s := &Store{
		collections: make(map[domain.Kind]collection, len(domain.Kinds)),
		subs:        make(map[int]*subscription),
	}
	for _, k := range domain.Kinds {
		s.collections[k] = collection{docs: make(map[string]datasources.Fields)}
	}
	return s
}

func (s *Store) Query(ctx context.Context, spec datasources.QuerySpec) (domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.query(ctx, spec)
}

// query must be called with mu held.
func (s *Store) query(ctx context.Context, spec datasources.QuerySpec) (domain.Snapshot, error) {
	logger := domain.LoggerFromContext(ctx)

	var snap domain.Snapshot
	for _, kind := range domain.Kinds {
		filter, ok := spec[kind]
		if !ok {
			continue
		}

		c := s.collections[kind]
		for _, id := range c.order {
			fields := c.docs[id]
			if !datasources.Matches(fields, filter) {
				continue
			}

			rec, err := datasources.DecodeRecord(kind, fields)
			if err != nil {
				logger.WarnContext(ctx, "skipping malformed record", "kind", kind, "id", id, "error", err)
				continue
			}
			if err := snap.Append(rec); err != nil {
				return domain.Snapshot{}, fmt.Errorf("building snapshot: %w", err)
			}
		}
	}

	return snap, nil
}

// Transact applies the batch to a copy of the affected collections and swaps them in
// only if every operation succeeds.
func (s *Store) Transact(ctx context.Context, batch datasources.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[domain.Kind]collection)
	for i, op := range batch {
		c, ok := staged[op.Kind]
		if !ok {
			current, known := s.collections[op.Kind]
			if !known {
				return fmt.Errorf("%w: unknown kind %q", datasources.ErrRejected, op.Kind)
			}
			c = current.clone()
		}

		current, exists := c.docs[op.ID]
		if !exists {
			current = nil
		}

		next, err := datasources.ApplyOperation(current, op)
		if err != nil {
			return fmt.Errorf("applying operation %d of batch: %w", i, err)
		}

		switch {
		case next == nil && exists:
			delete(c.docs, op.ID)
			c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == op.ID })
		case next != nil && !exists:
			c.docs[op.ID] = next
			c.order = append(c.order, op.ID)
		case next != nil:
			c.docs[op.ID] = next
		}
		staged[op.Kind] = c
	}

	for kind, c := range staged {
		s.collections[kind] = c
	}
	s.publish(ctx)

	return nil
}

// publish queues a new snapshot for every subscriber whose view changed.
// It must be called with mu held so snapshots are queued in commit order.
func (s *Store) publish(ctx context.Context) {
	logger := domain.LoggerFromContext(ctx)

	for id, sub := range s.subs {
		snap, err := s.query(ctx, sub.spec)
		if err != nil {
			logger.ErrorContext(ctx, "error refreshing subscription", "subscription", id, "error", err)
			continue
		}
		if reflect.DeepEqual(snap, sub.last) {
			continue
		}
		sub.last = snap
		sub.push(snap)
	}
}

func (s *Store) Subscribe(
	ctx context.Context,
	spec datasources.QuerySpec,
	fn func(domain.Snapshot),
) (datasources.Unsubscribe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	first, err := s.query(ctx, spec)
	if err != nil {
		return nil, err
	}

	sub := newSubscription(spec, fn)
	sub.last = first
	sub.push(first)

	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = sub

	go sub.run(ctx)
	go func() {
		<-sub.done
		s.removeSubscription(id)
	}()

	// Must not be called from within the subscription's own callback.
	var once sync.Once
	return func() {
		once.Do(func() {
			s.removeSubscription(id)
			sub.stop()
		})
	}, nil
}

func (s *Store) removeSubscription(id int) {
	s.mu.Lock()
	delete(s.subs, id)
	s.mu.Unlock()
}
