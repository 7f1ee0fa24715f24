package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/indiesound/artist-insights/internal/command"
	cmdmocks "github.com/indiesound/artist-insights/internal/command/mocks"
	"github.com/indiesound/artist-insights/internal/domain"
)

func TestRecommendationGet_ServeHTTP(t *testing.T) {
	avg := 4.5
	detail := command.RecommendationDetail{
		Card: domain.Card{
			Recommendation: domain.Recommendation{ID: "rec1", Title: "Carl-bot"},
			AverageRating:  &avg,
			AverageLabel:   "4.5",
			Viewer:         domain.CardState{HasRating: true, Stars: 5},
		},
		Comments: []domain.CommentView{{Comment: domain.Comment{ID: "c1", Content: "great"}}},
	}

	cases := []struct {
		name       string
		getErr     error
		wantStatus int
		wantBody   []string
	}{
		{
			name:       "success",
			wantStatus: http.StatusOK,
			wantBody:   []string{`"averageLabel":"4.5"`, `"stars":5`, `"content":"great"`},
		},
		{
			name:       "not_found",
			getErr:     &domain.NotFoundError{Kind: domain.KindRecommendation, ID: "rec1"},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store_error",
			getErr:     errors.New("database error"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			getCmd := cmdmocks.NewMockCommand[command.GetRecommendationRequest, command.RecommendationDetail](t)
			getCmd.EXPECT().
				Execute(mock.Anything, command.GetRecommendationRequest{Viewer: testUser, RecommendationID: "rec1"}).
				Return(detail, tc.getErr)

			ctrl := RecommendationGet{GetCmd: getCmd}

			req := httptest.NewRequest(http.MethodGet, "/v1/recommendations/rec1", nil)
			req = testContextWithIdentity(testUser)(req)
			req = mux.SetURLVars(req, map[string]string{"recommendation_id": "rec1"})
			rec := httptest.NewRecorder()

			ctrl.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			for _, want := range tc.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
		})
	}
}
