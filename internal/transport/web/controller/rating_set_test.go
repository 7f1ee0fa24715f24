package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/indiesound/artist-insights/internal/command"
	cmdmocks "github.com/indiesound/artist-insights/internal/command/mocks"
	"github.com/indiesound/artist-insights/internal/domain"
)

func TestRatingSet_ServeHTTP(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		identity   domain.Identity
		wantStars  int
		cmdErr     error
		skipCmd    bool
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"stars":4}`,
			identity:   testUser,
			wantStars:  4,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed_body",
			body:       `{"stars":`,
			identity:   testUser,
			skipCmd:    true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "out_of_range",
			body:       `{"stars":6}`,
			identity:   testUser,
			wantStars:  6,
			cmdErr:     &domain.ValidationError{Field: "stars", Message: "stars must be between 1 and 5"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "anonymous",
			body:       `{"stars":3}`,
			wantStars:  3,
			cmdErr:     &domain.AuthRequiredError{Action: "rate recommendations"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "remote_write_failed",
			body:       `{"stars":2}`,
			identity:   testUser,
			wantStars:  2,
			cmdErr:     &domain.RemoteWriteError{Err: errors.New("timeout")},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRatingCmd := cmdmocks.NewMockCommand[command.SubmitRatingRequest, domain.Card](t)
			if !tc.skipCmd {
				setRatingCmd.EXPECT().
					Execute(mock.Anything, command.SubmitRatingRequest{
						Identity:         tc.identity,
						RecommendationID: "rec1",
						Stars:            tc.wantStars,
					}).
					Return(domain.Card{RatingCount: 1}, tc.cmdErr)
			}

			ctrl := RatingSet{SetRatingCmd: setRatingCmd}

			req := httptest.NewRequest(http.MethodPut, "/v1/recommendations/rec1/rating", strings.NewReader(tc.body))
			req = testContextWithIdentity(tc.identity)(req)
			req = mux.SetURLVars(req, map[string]string{"recommendation_id": "rec1"})
			rec := httptest.NewRecorder()

			ctrl.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"ratingCount":1`)
			}
		})
	}
}
