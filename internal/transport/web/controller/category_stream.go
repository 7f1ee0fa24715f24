package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

// CategoryStream serves a category listing as server-sent events. The current listing is
// sent first, then a fresh listing every time a recommendation, rating, recommend or
// comment in the category changes.
type CategoryStream struct {
	Subscriber datasources.Subscriber
}

func (c CategoryStream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logger := domain.LoggerFromContext(r.Context()).With(
		"section", vars["section"],
		"category", vars["category"],
	)
	ctx := domain.ContextWithLogger(r.Context(), logger)

	section, category, err := domain.LookupCategory(vars["section"], vars["category"])
	if err != nil {
		writeError(ctx, w, err, "unable to stream category")
		return
	}
	sort, err := domain.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(ctx, w, err, "unable to stream category")
		return
	}
	viewerID := domain.IdentityFromContext(ctx).ID

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	listings := make(chan command.CategoryListing)
	unsubscribe, err := c.Subscriber.Subscribe(ctx, command.CategoryQuery(section.Key, category.Key),
		func(snap domain.Snapshot) {
			listing, err := command.BuildCategoryListing(snap, section, category, sort, viewerID)
			if err != nil {
				logger.ErrorContext(ctx, "unable to build category listing", "error", err)
				return
			}
			select {
			case listings <- listing:
			case <-ctx.Done():
			}
		})
	if err != nil {
		writeError(ctx, w, err, "unable to subscribe to category")
		return
	}
	defer func() {
		// Release a callback blocked on send before waiting for it.
		cancel()
		unsubscribe()
	}()

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "category stream closed")
			return
		case listing := <-listings:
			data, err := json.Marshal(listing)
			if err != nil {
				logger.ErrorContext(ctx, "unable to encode category listing", "error", err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: listing\ndata: %s\n\n", data); err != nil {
				logger.DebugContext(ctx, "unable to write to category stream", "error", err)
				return
			}
			if err := rc.Flush(); err != nil {
				logger.WarnContext(ctx, "unable to flush category stream", "error", err)
				return
			}
		}
	}
}
