package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/datasources/badger"
	"github.com/indiesound/artist-insights/internal/datasources/memory"
	"github.com/indiesound/artist-insights/internal/datasources/mysql"
	"github.com/indiesound/artist-insights/internal/domain"
)

// storeSetup is the document store chosen by STORE_DRIVER, with the live-query source
// to serve subscriptions from and a function releasing its resources on shutdown.
type storeSetup struct {
	Store      datasources.Store
	Subscriber datasources.Subscriber
	Close      func() error
}

func setupStore(ctx context.Context) (storeSetup, error) {
	logger := domain.LoggerFromContext(ctx)

	driver := MustGetEnvAsString(ctx, "STORE_DRIVER")
	logger.InfoContext(ctx, "setting up document store", "driver", driver)

	switch driver {
	case "memory":
		store := memory.New()
		return storeSetup{
			Store:      datasources.NewBreakerStore(ctx, store, datasources.DefaultBreakerSettings(driver)),
			Subscriber: store,
			Close:      func() error { return nil },
		}, nil
	case "mysql":
		db, err := mysql.Connect(ctx, MustGetEnvAsString(ctx, "MYSQL_URI"))
		if err != nil {
			return storeSetup{}, fmt.Errorf("connecting to MySQL: %w", err)
		}
		if err := mysql.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return storeSetup{}, fmt.Errorf("ensuring MySQL schema: %w", err)
		}
		return polledStore(ctx, driver, mysql.New(db), db.Close), nil
	case "badger":
		db, err := badger.Open(MustGetEnvAsString(ctx, "BADGER_PATH"))
		if err != nil {
			return storeSetup{}, fmt.Errorf("opening badger database: %w", err)
		}
		return polledStore(ctx, driver, badger.New(db), db.Close), nil
	default:
		return storeSetup{}, fmt.Errorf("unknown store driver [%s]", driver)
	}
}

// polledStore serves subscriptions on a store without change notification by polling it
// through the circuit breaker.
func polledStore(ctx context.Context, name string, store datasources.Store, closeFn func() error) storeSetup {
	guarded := datasources.NewBreakerStore(ctx, store, datasources.DefaultBreakerSettings(name))
	return storeSetup{
		Store:      guarded,
		Subscriber: datasources.NewPoller(guarded, MustGetEnvAsDuration(ctx, "STORE_POLL_INTERVAL")),
		Close:      closeFn,
	}
}

// closeAfter runs a component and releases the store only once that component has
// returned, so requests still draining during shutdown keep a working store.
type closeAfter struct {
	component Component
	close     func() error
}

func (c closeAfter) Run(ctx context.Context) error {
	runErr := c.component.Run(ctx)
	if err := c.close(); err != nil {
		return errors.Join(runErr, fmt.Errorf("closing document store: %w", err))
	}
	return runErr
}
