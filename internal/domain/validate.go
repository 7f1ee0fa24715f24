package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their wire names so messages match what clients sent.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})

		if err := validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		}); err != nil {
			panic(fmt.Sprintf("registering notblank validation: %v", err))
		}
	})

	return validate
}

// validateStruct runs the struct's validate tags and returns only the first violation.
func validateStruct(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validating %T: %w", s, err)
	}

	fe := fieldErrs[0]
	return &ValidationError{
		Field:   fe.Field(),
		Rule:    fe.Tag(),
		Message: validationMessage(fe),
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "url":
		return fmt.Sprintf("%s must be a valid absolute URL", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// RecommendationDraft is a recommendation as submitted by a user, before it is given
// an ID, owner and timestamp.
type RecommendationDraft struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	Section     string `json:"section" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// Normalized returns the draft with surrounding whitespace removed from every field.
func (d RecommendationDraft) Normalized() RecommendationDraft {
	return RecommendationDraft{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		URL:         strings.TrimSpace(d.URL),
		ImageURL:    strings.TrimSpace(d.ImageURL),
		Section:     strings.TrimSpace(d.Section),
		Category:    strings.TrimSpace(d.Category),
	}
}

// ValidateRecommendationDraft checks a normalized draft. Field rules are checked in
// declaration order, then the section/category pair is resolved against the taxonomy.
func ValidateRecommendationDraft(d RecommendationDraft) error {
	if err := validateStruct(d); err != nil {
		return err
	}
	return ValidateCategory(d.Section, d.Category)
}

// ProfileInput holds the editable fields of a user profile.
type ProfileInput struct {
	Username  string `json:"username" validate:"notblank"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	SocialLinks
}

// Normalized trims every field of the profile input.
func (p ProfileInput) Normalized() ProfileInput {
	return ProfileInput{
		Username:  strings.TrimSpace(p.Username),
		AvatarURL: strings.TrimSpace(p.AvatarURL),
		SocialLinks: SocialLinks{
			SpotifyURL:    strings.TrimSpace(p.SpotifyURL),
			InstagramURL:  strings.TrimSpace(p.InstagramURL),
			SoundcloudURL: strings.TrimSpace(p.SoundcloudURL),
			YoutubeURL:    strings.TrimSpace(p.YoutubeURL),
			TiktokURL:     strings.TrimSpace(p.TiktokURL),
			TwitterURL:    strings.TrimSpace(p.TwitterURL),
			BandcampURL:   strings.TrimSpace(p.BandcampURL),
			AppleMusicURL: strings.TrimSpace(p.AppleMusicURL),
		},
	}
}

func ValidateProfileInput(p ProfileInput) error {
	return validateStruct(p)
}

// ValidateStars checks a star rating is a whole number from 1 to 5.
func ValidateStars(stars int) error {
	if err := getValidator().Var(stars, "min=1,max=5"); err != nil {
		return &ValidationError{
			Field:   "stars",
			Rule:    "range",
			Message: "stars must be between 1 and 5",
		}
	}
	return nil
}

// NormalizeCommentText trims a comment and rejects it if nothing is left.
func NormalizeCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ValidationError{
			Field:   "content",
			Rule:    "notblank",
			Message: "content is required",
		}
	}
	return text, nil
}
