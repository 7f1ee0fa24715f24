package datasources

import (
	"context"
	"errors"

	"github.com/indiesound/artist-insights/internal/domain"
)

// ErrRejected is returned, wrapped, when a store refuses an operation on its own terms:
// a malformed record, a duplicate create, an update of a missing record, or a mutation
// the record lifecycle does not allow. Rejections do not count against store health.
var ErrRejected = errors.New("operation rejected by store")

// Filter is a set of field equality constraints, keyed by the record's wire field name.
// Only string fields can be filtered on.
type Filter map[string]string

// QuerySpec names the kinds to fetch and how to filter each. A kind absent from the
// spec is not fetched; a kind mapped to an empty filter is fetched in full.
type QuerySpec map[domain.Kind]Filter

// RecordQuerier fetches a point-in-time snapshot of the records matching a spec.
type RecordQuerier interface {
	Query(ctx context.Context, spec QuerySpec) (domain.Snapshot, error)
}

// Transactor applies a batch of operations atomically: all or none.
type Transactor interface {
	Transact(ctx context.Context, batch Batch) error
}

// Unsubscribe stops a subscription. It waits for any in-progress callback to return
// and is safe to call more than once.
type Unsubscribe func()

// Subscriber delivers a fresh snapshot every time the records matching a spec change.
// The current snapshot is always delivered first. Snapshots arrive in commit order,
// one callback at a time, and none are dropped.
type Subscriber interface {
	Subscribe(ctx context.Context, spec QuerySpec, fn func(domain.Snapshot)) (Unsubscribe, error)
}

// Store is a document store that can be read and written.
type Store interface {
	RecordQuerier
	Transactor
}

// LiveStore is a store that can also push snapshot changes.
type LiveStore interface {
	Store
	Subscriber
}
