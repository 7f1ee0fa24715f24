package datasources

import (
	"fmt"
	"maps"

	"github.com/goccy/go-json"

	"github.com/indiesound/artist-insights/internal/domain"
)

type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Fields is a record in its document form, keyed by wire field name.
type Fields map[string]any

// Operation is one write against a single record.
// For updates, a nil field value removes that field.
type Operation struct {
	Kind   domain.Kind
	ID     string
	Op     Op
	Fields Fields
}

// Batch is an ordered list of operations applied as one unit.
type Batch []Operation

// updatableFields lists, per kind, the fields an update may touch.
// Kinds missing from the map cannot be updated at all.
var updatableFields = map[domain.Kind]map[string]struct{}{
	domain.KindUser: setOf(
		"username", "avatarUrl",
		"spotifyUrl", "instagramUrl", "soundcloudUrl", "youtubeUrl",
		"tiktokUrl", "twitterUrl", "bandcampUrl", "appleMusicUrl",
	),
	domain.KindRating: setOf("stars"),
}

var deletableKinds = setOf(domain.KindRecommend)

func setOf[T comparable](vs ...T) map[T]struct{} {
	m := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}

// ValidateOperation checks an operation against the record lifecycle: every kind may be
// created, only users and ratings may be updated (and only their mutable fields), and
// only recommends may be deleted.
func ValidateOperation(op Operation) error {
	if op.ID == "" {
		return fmt.Errorf("%w: %s operation on %s has no id", ErrRejected, op.Op, op.Kind)
	}
	if !knownKind(op.Kind) {
		return fmt.Errorf("%w: unknown kind %q", ErrRejected, op.Kind)
	}

	switch op.Op {
	case OpCreate:
		return nil
	case OpUpdate:
		allowed, ok := updatableFields[op.Kind]
		if !ok {
			return fmt.Errorf("%w: %s records cannot be updated", ErrRejected, op.Kind)
		}
		for name := range op.Fields {
			if _, ok := allowed[name]; !ok {
				return fmt.Errorf("%w: field %q of %s records cannot be updated", ErrRejected, name, op.Kind)
			}
		}
		return nil
	case OpDelete:
		if _, ok := deletableKinds[op.Kind]; !ok {
			return fmt.Errorf("%w: %s records cannot be deleted", ErrRejected, op.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown op %q", ErrRejected, op.Op)
	}
}

func knownKind(kind domain.Kind) bool {
	for _, k := range domain.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// CreateOp builds the operation that stores rec as a new record.
func CreateOp(rec domain.Record) (Operation, error) {
	fields, err := EncodeFields(rec)
	if err != nil {
		return Operation{}, err
	}
	return Operation{Kind: rec.RecordKind(), ID: rec.RecordID(), Op: OpCreate, Fields: fields}, nil
}

// EncodeFields converts a record to its document form.
func EncodeFields(rec domain.Record) (Fields, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding %s [%s]: %w", rec.RecordKind(), rec.RecordID(), err)
	}

	var fields Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decoding %s [%s] fields: %w", rec.RecordKind(), rec.RecordID(), err)
	}
	return fields, nil
}

// DecodeRecord converts a document to its typed record and validates it.
func DecodeRecord(kind domain.Kind, fields Fields) (domain.Record, error) {
	switch kind {
	case domain.KindUser:
		return decode[domain.User](fields)
	case domain.KindRecommendation:
		return decode[domain.Recommendation](fields)
	case domain.KindRating:
		return decode[domain.Rating](fields)
	case domain.KindRecommend:
		return decode[domain.Recommend](fields)
	case domain.KindComment:
		return decode[domain.Comment](fields)
	case domain.KindShare:
		return decode[domain.Share](fields)
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", ErrRejected, kind)
	}
}

func decode[T domain.Record](fields Fields) (domain.Record, error) {
	var rec T

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding %s fields: %w", rec.RecordKind(), err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrRejected, rec.RecordKind(), err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid %s [%s]: %v", ErrRejected, rec.RecordKind(), rec.RecordID(), err)
	}

	return rec, nil
}

// MergeFields returns a copy of current with changes applied. Nil values remove fields.
func MergeFields(current, changes Fields) Fields {
	merged := maps.Clone(current)
	if merged == nil {
		merged = Fields{}
	}
	for k, v := range changes {
		if v == nil {
			delete(merged, k)
			continue
		}
		merged[k] = v
	}
	return merged
}

// ApplyOperation computes the document that results from applying op to current, where
// current is nil if no record with op's ID exists. A nil result with a nil error means
// the record is absent afterwards. Deleting an absent record is a no-op.
func ApplyOperation(current Fields, op Operation) (Fields, error) {
	if err := ValidateOperation(op); err != nil {
		return nil, err
	}

	var next Fields
	switch op.Op {
	case OpCreate:
		if current != nil {
			return nil, fmt.Errorf("%w: %s [%s] already exists", ErrRejected, op.Kind, op.ID)
		}
		next = MergeFields(nil, op.Fields)
	case OpUpdate:
		if current == nil {
			return nil, fmt.Errorf("%w: %s [%s] does not exist", ErrRejected, op.Kind, op.ID)
		}
		next = MergeFields(current, op.Fields)
	case OpDelete:
		return nil, nil
	}
	next["id"] = op.ID

	rec, err := DecodeRecord(op.Kind, next)
	if err != nil {
		return nil, err
	}
	return EncodeFields(rec)
}

// Matches reports whether the document satisfies every constraint in the filter.
func Matches(fields Fields, filter Filter) bool {
	for name, want := range filter {
		got, ok := fields[name].(string)
		if !ok || got != want {
			return false
		}
	}
	return true
}
