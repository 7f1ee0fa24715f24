package controller

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

type CategoryList struct {
	ListCmd     command.Command[command.ListCategoryRequest, command.CategoryListing]
	CacheMaxAge time.Duration
}

func (c CategoryList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logger := domain.LoggerFromContext(r.Context()).With(
		"section", vars["section"],
		"category", vars["category"],
	)
	ctx := domain.ContextWithLogger(r.Context(), logger)

	listing, err := c.ListCmd.Execute(ctx, command.ListCategoryRequest{
		Viewer:   domain.IdentityFromContext(ctx),
		Section:  vars["section"],
		Category: vars["category"],
		Sort:     r.URL.Query().Get("sort"),
	})
	if err != nil {
		writeError(ctx, w, err, "unable to list category")
		return
	}

	// Cards carry the viewer's own state, so only anonymous listings are cacheable.
	maxAge := c.CacheMaxAge
	if domain.IdentityFromContext(ctx).Authenticated() {
		maxAge = 0
	}
	writeJSON(ctx, w, http.StatusOK, maxAge, listing)
}
