package domain

import "fmt"

// Snapshot is a point-in-time set of flat record collections as delivered by the store.
// Collections are unordered; any ordering is computed by the aggregation functions.
// Snapshots are treated as immutable once delivered.
type Snapshot struct {
	Users           []User           `json:"users,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
	Ratings         []Rating         `json:"ratings,omitempty"`
	Recommends      []Recommend      `json:"recommends,omitempty"`
	Comments        []Comment        `json:"comments,omitempty"`
	Shares          []Share          `json:"shares,omitempty"`
}

// Append adds a record to the collection matching its kind.
func (s *Snapshot) Append(rec Record) error {
	switch r := rec.(type) {
	case User:
		s.Users = append(s.Users, r)
	case *User:
		s.Users = append(s.Users, *r)
	case Recommendation:
		s.Recommendations = append(s.Recommendations, r)
	case *Recommendation:
		s.Recommendations = append(s.Recommendations, *r)
	case Rating:
		s.Ratings = append(s.Ratings, r)
	case *Rating:
		s.Ratings = append(s.Ratings, *r)
	case Recommend:
		s.Recommends = append(s.Recommends, r)
	case *Recommend:
		s.Recommends = append(s.Recommends, *r)
	case Comment:
		s.Comments = append(s.Comments, r)
	case *Comment:
		s.Comments = append(s.Comments, *r)
	case Share:
		s.Shares = append(s.Shares, r)
	case *Share:
		s.Shares = append(s.Shares, *r)
	default:
		return fmt.Errorf("unsupported record type %T", rec)
	}
	return nil
}

func (s Snapshot) FindUser(id string) (User, bool) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

func (s Snapshot) FindRecommendation(id string) (Recommendation, bool) {
	for _, r := range s.Recommendations {
		if r.ID == id {
			return r, true
		}
	}
	return Recommendation{}, false
}

// Records lists every record in the snapshot, grouped by kind in Kinds order.
func (s Snapshot) Records() []Record {
	out := make([]Record, 0,
		len(s.Users)+len(s.Recommendations)+len(s.Ratings)+len(s.Recommends)+len(s.Comments)+len(s.Shares))
	for _, r := range s.Users {
		out = append(out, r)
	}
	for _, r := range s.Recommendations {
		out = append(out, r)
	}
	for _, r := range s.Ratings {
		out = append(out, r)
	}
	for _, r := range s.Recommends {
		out = append(out, r)
	}
	for _, r := range s.Comments {
		out = append(out, r)
	}
	for _, r := range s.Shares {
		out = append(out, r)
	}
	return out
}
