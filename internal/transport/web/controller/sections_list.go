package controller

import (
	"net/http"
	"time"

	"github.com/indiesound/artist-insights/internal/domain"
)

// SectionsList serves the static section and category taxonomy.
type SectionsList struct {
	CacheMaxAge time.Duration
}

type SectionsListResponse struct {
	Data []domain.Section `json:"data"`
}

func (c SectionsList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, c.CacheMaxAge, SectionsListResponse{
		Data: domain.Sections(),
	})
}
