package controller

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"github.com/gorilla/mux"

	"github.com/indiesound/artist-insights/internal/command"
	"github.com/indiesound/artist-insights/internal/domain"
)

// CategoryRSS serves a category's newest recommendations as an RSS feed.
type CategoryRSS struct {
	FeedHostname    string
	FeedAuthorName  string
	FeedAuthorEmail string
	ListCmd         command.Command[command.ListCategoryRequest, command.CategoryListing]
	CacheMaxAge     time.Duration
}

func (c CategoryRSS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	logger := domain.LoggerFromContext(r.Context()).With(
		"section", vars["section"],
		"category", vars["category"],
	)
	ctx := domain.ContextWithLogger(r.Context(), logger)

	listing, err := c.ListCmd.Execute(ctx, command.ListCategoryRequest{
		Section:  vars["section"],
		Category: vars["category"],
		Sort:     string(domain.SortNewest),
	})
	if err != nil {
		writeError(ctx, w, err, "unable to fetch recommendations for feed")
		return
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("Artist Insights: %s", listing.Category.Name),
		Link:        &feeds.Link{Href: c.FeedHostname + r.URL.Path},
		Description: fmt.Sprintf("New recommendations in %s / %s", listing.Section.Name, listing.Category.Name),
		Author:      &feeds.Author{Name: c.FeedAuthorName, Email: c.FeedAuthorEmail},
		Created:     time.Now(),
	}

	for _, card := range listing.Cards {
		rec := card.Recommendation
		item := &feeds.Item{
			Id:          rec.ID,
			IsPermaLink: "false",
			Title:       rec.Title,
			Link:        &feeds.Link{Href: rec.URL},
			Description: rec.Description,
			Created:     time.UnixMilli(rec.CreatedAt),
		}
		if card.Submitter != nil {
			item.Author = &feeds.Author{Name: card.Submitter.Username}
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		logger.ErrorContext(ctx, "unable to format feed as RSS", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.Header().Set("Cache-Control", fmt.Sprintf("max-age=%d", int(c.CacheMaxAge.Seconds())))

	if _, err := w.Write([]byte(rss)); err != nil {
		logger.ErrorContext(ctx, "unable to write feed to response", "error", err)
	}
}
