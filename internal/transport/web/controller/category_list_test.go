package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/indiesound/artist-insights/internal/command"
	cmdmocks "github.com/indiesound/artist-insights/internal/command/mocks"
	"github.com/indiesound/artist-insights/internal/domain"
)

func TestCategoryList_ServeHTTP(t *testing.T) {
	listing := command.CategoryListing{
		Section:  domain.Section{Key: "software-hardware", Name: "Essential Software & Hardware Links"},
		Category: domain.Category{Key: "daws", Name: "DAWs (FL Studio, Ableton, Logic)"},
		Sort:     domain.SortNewest,
		Cards: []domain.Card{
			{Recommendation: domain.Recommendation{ID: "rec1", Title: "Ableton"}, AverageLabel: "No ratings"},
		},
	}

	cases := []struct {
		name         string
		queryString  string
		setupContext func(r *http.Request) *http.Request
		wantReq      command.ListCategoryRequest
		listErr      error
		wantStatus   int
		wantCache    string
		wantContains string
	}{
		{
			name:         "anonymous",
			setupContext: testContext(),
			wantReq:      command.ListCategoryRequest{Section: "software-hardware", Category: "daws"},
			wantStatus:   http.StatusOK,
			wantCache:    "max-age=60",
			wantContains: `"title":"Ableton"`,
		},
		{
			name:         "signed_in_with_sort",
			queryString:  "?sort=highest-rated",
			setupContext: testContextWithIdentity(testUser),
			wantReq: command.ListCategoryRequest{
				Viewer: testUser, Section: "software-hardware", Category: "daws", Sort: "highest-rated",
			},
			wantStatus: http.StatusOK,
			wantCache:  "no-store",
		},
		{
			name:         "bad_sort",
			queryString:  "?sort=alphabetical",
			setupContext: testContext(),
			wantReq: command.ListCategoryRequest{
				Section: "software-hardware", Category: "daws", Sort: "alphabetical",
			},
			listErr:    &domain.ValidationError{Field: "sort", Message: "unrecognised sort key: alphabetical"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:         "unknown_category",
			setupContext: testContext(),
			wantReq:      command.ListCategoryRequest{Section: "software-hardware", Category: "daws"},
			listErr:      &domain.NotFoundError{Kind: domain.KindCategory, ID: "software-hardware/daws"},
			wantStatus:   http.StatusNotFound,
		},
		{
			name:         "store_error",
			setupContext: testContext(),
			wantReq:      command.ListCategoryRequest{Section: "software-hardware", Category: "daws"},
			listErr:      errors.New("database error"),
			wantStatus:   http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			listCmd := cmdmocks.NewMockCommand[command.ListCategoryRequest, command.CategoryListing](t)
			listCmd.EXPECT().Execute(mock.Anything, tc.wantReq).Return(listing, tc.listErr)

			ctrl := CategoryList{ListCmd: listCmd, CacheMaxAge: time.Minute}

			req := httptest.NewRequest(http.MethodGet,
				"/v1/sections/software-hardware/daws/recommendations"+tc.queryString, nil)
			req = tc.setupContext(req)
			req = mux.SetURLVars(req, map[string]string{"section": "software-hardware", "category": "daws"})
			rec := httptest.NewRecorder()

			ctrl.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantCache != "" {
				assert.Equal(t, tc.wantCache, rec.Header().Get("Cache-Control"))
			}
			if tc.wantContains != "" {
				assert.Contains(t, rec.Body.String(), tc.wantContains)
			}
		})
	}
}
