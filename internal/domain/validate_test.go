package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() RecommendationDraft {
	return RecommendationDraft{
		Title:       "Discord Server for Hip-Hop Producers",
		Description: "Weekly beat battles and feedback threads.",
		URL:         "https://discord.gg/example",
		Section:     "community-management",
		Category:    "discord-setup",
	}
}

func TestValidateRecommendationDraft(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(d *RecommendationDraft)
		wantField string
		wantRule  string
	}{
		{
			name:   "valid",
			mutate: func(d *RecommendationDraft) {},
		},
		{
			name:   "valid_without_links",
			mutate: func(d *RecommendationDraft) { d.URL = "" },
		},
		{
			name:      "empty_title",
			mutate:    func(d *RecommendationDraft) { d.Title = "" },
			wantField: "title",
			wantRule:  "notblank",
		},
		{
			name:      "whitespace_description",
			mutate:    func(d *RecommendationDraft) { d.Description = "   " },
			wantField: "description",
			wantRule:  "notblank",
		},
		{
			name: "first_violation_only",
			mutate: func(d *RecommendationDraft) {
				d.Title = ""
				d.Description = ""
				d.URL = "nope"
			},
			wantField: "title",
			wantRule:  "notblank",
		},
		{
			name:      "relative_url",
			mutate:    func(d *RecommendationDraft) { d.URL = "/just/a/path" },
			wantField: "url",
			wantRule:  "url",
		},
		{
			name:      "malformed_image_url",
			mutate:    func(d *RecommendationDraft) { d.ImageURL = "not a url" },
			wantField: "imageUrl",
			wantRule:  "url",
		},
		{
			name:      "unknown_section",
			mutate:    func(d *RecommendationDraft) { d.Section = "merch" },
			wantField: "section",
			wantRule:  "taxonomy",
		},
		{
			name:      "category_from_other_section",
			mutate:    func(d *RecommendationDraft) { d.Category = "daws" },
			wantField: "category",
			wantRule:  "taxonomy",
		},
		{
			name:      "missing_category",
			mutate:    func(d *RecommendationDraft) { d.Category = "" },
			wantField: "category",
			wantRule:  "required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)

			err := ValidateRecommendationDraft(d.Normalized())
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantField, vErr.Field)
			assert.Equal(t, tc.wantRule, vErr.Rule)
			assert.NotEmpty(t, vErr.Message)
		})
	}
}

func TestRecommendationDraft_Normalized(t *testing.T) {
	d := RecommendationDraft{
		Title:       "  Ableton tips ",
		Description: "\tsidechain everything\n",
		URL:         " https://example.com ",
	}.Normalized()

	assert.Equal(t, "Ableton tips", d.Title)
	assert.Equal(t, "sidechain everything", d.Description)
	assert.Equal(t, "https://example.com", d.URL)
}

func TestValidateProfileInput(t *testing.T) {
	cases := []struct {
		name      string
		input     ProfileInput
		wantField string
	}{
		{
			name:  "valid",
			input: ProfileInput{Username: "beatsmith", SocialLinks: SocialLinks{SpotifyURL: "https://open.spotify.com/artist/1"}},
		},
		{
			name:      "blank_username",
			input:     ProfileInput{Username: " "},
			wantField: "username",
		},
		{
			name:      "bad_avatar",
			input:     ProfileInput{Username: "beatsmith", AvatarURL: "avatar.png"},
			wantField: "avatarUrl",
		},
		{
			name:      "bad_social_link",
			input:     ProfileInput{Username: "beatsmith", SocialLinks: SocialLinks{BandcampURL: "bandcamp"}},
			wantField: "bandcampUrl",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateProfileInput(tc.input.Normalized())
			if tc.wantField == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestRecordValidate(t *testing.T) {
	cases := []struct {
		name    string
		record  Record
		wantErr bool
	}{
		{
			name:   "valid_rating",
			record: Rating{ID: "r", RecommendationID: "rec", UserID: "u", Stars: 5},
		},
		{
			name:    "rating_zero_stars",
			record:  Rating{ID: "r", RecommendationID: "rec", UserID: "u", Stars: 0},
			wantErr: true,
		},
		{
			name:    "rating_six_stars",
			record:  Rating{ID: "r", RecommendationID: "rec", UserID: "u", Stars: 6},
			wantErr: true,
		},
		{
			name:    "comment_blank",
			record:  Comment{ID: "c", RecommendationID: "rec", UserID: "u", Content: " "},
			wantErr: true,
		},
		{
			name:    "recommend_missing_user",
			record:  Recommend{ID: "x", RecommendationID: "rec"},
			wantErr: true,
		},
		{
			name: "recommendation_bad_taxonomy",
			record: Recommendation{
				ID: "rec", UserID: "u", Section: "learning-resources", Category: "plugins",
				Title: "t", Description: "d",
			},
			wantErr: true,
		},
		{
			name:   "user_valid",
			record: User{ID: "u", Username: "name"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.record.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStars(t *testing.T) {
	for stars := -1; stars <= 7; stars++ {
		err := ValidateStars(stars)
		if stars >= 1 && stars <= 5 {
			assert.NoError(t, err, "stars=%d", stars)
			continue
		}
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "stars=%d", stars)
		assert.Equal(t, "stars", vErr.Field)
	}
}

func TestNormalizeCommentText(t *testing.T) {
	got, err := NormalizeCommentText("  love this channel \n")
	require.NoError(t, err)
	assert.Equal(t, "love this channel", got)

	_, err = NormalizeCommentText(" \t ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "content", vErr.Field)
}
