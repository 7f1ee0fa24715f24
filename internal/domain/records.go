package domain

import "time"

// Kind names a collection in the document store.
type Kind string

const (
	KindUser           Kind = "users"
	KindRecommendation Kind = "recommendations"
	KindRating         Kind = "ratings"
	KindRecommend      Kind = "recommends"
	KindComment        Kind = "comments"
	KindShare          Kind = "shares"
)

// Kinds lists every record kind in a stable order.
var Kinds = []Kind{
	KindUser,
	KindRecommendation,
	KindRating,
	KindRecommend,
	KindComment,
	KindShare,
}

// Record is implemented by every entity stored in the document store.
type Record interface {
	RecordKind() Kind
	RecordID() string
	Validate() error
}

// Millis converts t to the epoch-millisecond form used for every stored timestamp.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

// SocialLinks are the optional profile links a musician can publish.
type SocialLinks struct {
	SpotifyURL    string `json:"spotifyUrl,omitempty" validate:"omitempty,url"`
	InstagramURL  string `json:"instagramUrl,omitempty" validate:"omitempty,url"`
	SoundcloudURL string `json:"soundcloudUrl,omitempty" validate:"omitempty,url"`
	YoutubeURL    string `json:"youtubeUrl,omitempty" validate:"omitempty,url"`
	TiktokURL     string `json:"tiktokUrl,omitempty" validate:"omitempty,url"`
	TwitterURL    string `json:"twitterUrl,omitempty" validate:"omitempty,url"`
	BandcampURL   string `json:"bandcampUrl,omitempty" validate:"omitempty,url"`
	AppleMusicURL string `json:"appleMusicUrl,omitempty" validate:"omitempty,url"`
}

type User struct {
	ID        string `json:"id" validate:"required"`
	Email     string `json:"email"`
	Username  string `json:"username" validate:"notblank"`
	AvatarURL string `json:"avatarUrl,omitempty" validate:"omitempty,url"`
	SocialLinks
	CreatedAt int64 `json:"createdAt"`
}

func (u User) RecordKind() Kind { return KindUser }
func (u User) RecordID() string { return u.ID }
func (u User) Validate() error { return validateStruct(u) }

type Recommendation struct {
	ID          string `json:"id" validate:"required"`
	UserID      string `json:"userId" validate:"required"`
	Section     string `json:"section" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`
	URL         string `json:"url,omitempty" validate:"omitempty,url"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CreatedAt   int64  `json:"createdAt"`
}

func (r Recommendation) RecordKind() Kind { return KindRecommendation }
func (r Recommendation) RecordID() string { return r.ID }

func (r Recommendation) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return ValidateCategory(r.Section, r.Category)
}

type Rating struct {
	ID               string `json:"id" validate:"required"`
	RecommendationID string `json:"recommendationId" validate:"required"`
	UserID           string `json:"userId" validate:"required"`
	Stars            int    `json:"stars" validate:"min=1,max=5"`
	CreatedAt        int64  `json:"createdAt"`
}

func (r Rating) RecordKind() Kind { return KindRating }
func (r Rating) RecordID() string { return r.ID }
func (r Rating) Validate() error { return validateStruct(r) }

// Recommend is an upvote; its presence means the user recommends the item.
type Recommend struct {
	ID               string `json:"id" validate:"required"`
	RecommendationID string `json:"recommendationId" validate:"required"`
	UserID           string `json:"userId" validate:"required"`
	CreatedAt        int64  `json:"createdAt"`
}

func (r Recommend) RecordKind() Kind { return KindRecommend }
func (r Recommend) RecordID() string { return r.ID }
func (r Recommend) Validate() error { return validateStruct(r) }

type Comment struct {
	ID               string `json:"id" validate:"required"`
	RecommendationID string `json:"recommendationId" validate:"required"`
	UserID           string `json:"userId" validate:"required"`
	Content          string `json:"content" validate:"notblank"`
	CreatedAt        int64  `json:"createdAt"`
}

func (c Comment) RecordKind() Kind { return KindComment }
func (c Comment) RecordID() string { return c.ID }
func (c Comment) Validate() error { return validateStruct(c) }

// Share is an analytics event recorded when a signed-in user shares a recommendation.
type Share struct {
	ID               string `json:"id" validate:"required"`
	RecommendationID string `json:"recommendationId" validate:"required"`
	UserID           string `json:"userId" validate:"required"`
	CreatedAt        int64  `json:"createdAt"`
}

func (s Share) RecordKind() Kind { return KindShare }
func (s Share) RecordID() string { return s.ID }
func (s Share) Validate() error { return validateStruct(s) }
