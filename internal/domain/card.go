package domain

import "cmp"

type interactionKey struct {
	recommendationID string
	userID           string
}

// InteractionIndex maps (recommendation, user) pairs to that user's rating and recommend
// records, so per-card viewer state is a lookup rather than a scan of every collection.
type InteractionIndex struct {
	ratings    map[interactionKey]Rating
	recommends map[interactionKey]Recommend
}

// NewInteractionIndex builds an index over the given records. Should the store hold more
// than one record for a pair, the earliest created (then lowest ID) is indexed.
func NewInteractionIndex(ratings []Rating, recommends []Recommend) InteractionIndex {
	idx := InteractionIndex{
		ratings:    make(map[interactionKey]Rating, len(ratings)),
		recommends: make(map[interactionKey]Recommend, len(recommends)),
	}

	for _, r := range ratings {
		k := interactionKey{r.RecommendationID, r.UserID}
		if cur, ok := idx.ratings[k]; !ok || earlier(r.CreatedAt, r.ID, cur.CreatedAt, cur.ID) {
			idx.ratings[k] = r
		}
	}
	for _, r := range recommends {
		k := interactionKey{r.RecommendationID, r.UserID}
		if cur, ok := idx.recommends[k]; !ok || earlier(r.CreatedAt, r.ID, cur.CreatedAt, cur.ID) {
			idx.recommends[k] = r
		}
	}

	return idx
}

func earlier(aTime int64, aID string, bTime int64, bID string) bool {
	if c := cmp.Compare(aTime, bTime); c != 0 {
		return c < 0
	}
	return aID < bID
}

func (x InteractionIndex) Rating(recommendationID, userID string) (Rating, bool) {
	r, ok := x.ratings[interactionKey{recommendationID, userID}]
	return r, ok
}

func (x InteractionIndex) Recommend(recommendationID, userID string) (Recommend, bool) {
	r, ok := x.recommends[interactionKey{recommendationID, userID}]
	return r, ok
}

// CardState is the viewer's own interaction with a recommendation card.
// HasRating and HasRecommend are independent.
type CardState struct {
	HasRating    bool `json:"hasRating"`
	Stars        int  `json:"stars,omitempty"`
	HasRecommend bool `json:"hasRecommend"`
}

// State returns the viewer's state for a card. Anonymous viewers have no interactions.
func (x InteractionIndex) State(recommendationID, userID string) CardState {
	if userID == "" {
		return CardState{}
	}

	var state CardState
	if r, ok := x.Rating(recommendationID, userID); ok {
		state.HasRating = true
		state.Stars = r.Stars
	}
	if _, ok := x.Recommend(recommendationID, userID); ok {
		state.HasRecommend = true
	}
	return state
}

// Card is a recommendation with every derived metric needed to display it.
type Card struct {
	Recommendation Recommendation `json:"recommendation"`
	Submitter      *User          `json:"submitter,omitempty"`
	AverageRating  *float64       `json:"averageRating"`
	AverageLabel   string         `json:"averageLabel"`
	RatingCount    int            `json:"ratingCount"`
	RecommendCount int            `json:"recommendCount"`
	CommentCount   int            `json:"commentCount"`
	Viewer         CardState      `json:"viewer"`
}

func buildCard(rec Recommendation, snap Snapshot, idx InteractionIndex, viewerID string) Card {
	card := Card{
		Recommendation: rec,
		RatingCount:    RatingCount(rec.ID, snap.Ratings),
		RecommendCount: RecommendCount(rec.ID, snap.Recommends),
		CommentCount:   CommentCount(rec.ID, snap.Comments),
		Viewer:         idx.State(rec.ID, viewerID),
	}

	avg, ok := AverageRating(rec.ID, snap.Ratings)
	if ok {
		card.AverageRating = &avg
	}
	card.AverageLabel = FormatAverage(avg, ok)

	if u, found := snap.FindUser(rec.UserID); found {
		card.Submitter = &u
	}

	return card
}

// BuildCard derives the card for one recommendation in the snapshot.
func BuildCard(snap Snapshot, recommendationID, viewerID string) (Card, bool) {
	rec, ok := snap.FindRecommendation(recommendationID)
	if !ok {
		return Card{}, false
	}
	idx := NewInteractionIndex(snap.Ratings, snap.Recommends)
	return buildCard(rec, snap, idx, viewerID), true
}

// BuildCards derives cards for every recommendation in the snapshot, in key order.
func BuildCards(snap Snapshot, key SortKey, viewerID string) ([]Card, error) {
	sorted, err := SortRecommendations(snap.Recommendations, key, snap.Ratings, snap.Recommends)
	if err != nil {
		return nil, err
	}

	idx := NewInteractionIndex(snap.Ratings, snap.Recommends)
	cards := make([]Card, 0, len(sorted))
	for _, rec := range sorted {
		cards = append(cards, buildCard(rec, snap, idx, viewerID))
	}
	return cards, nil
}

// CommentView is a comment together with its author, when known.
type CommentView struct {
	Comment Comment `json:"comment"`
	Author  *User   `json:"author,omitempty"`
}

// BuildThread returns a recommendation's comments newest first with their authors.
func BuildThread(snap Snapshot, recommendationID string) []CommentView {
	thread := CommentsNewestFirst(recommendationID, snap.Comments)
	views := make([]CommentView, 0, len(thread))
	for _, c := range thread {
		view := CommentView{Comment: c}
		if u, ok := snap.FindUser(c.UserID); ok {
			view.Author = &u
		}
		views = append(views, view)
	}
	return views
}
