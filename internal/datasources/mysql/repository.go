package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/huandu/go-sqlbuilder"

	"github.com/indiesound/artist-insights/internal/datasources"
	"github.com/indiesound/artist-insights/internal/domain"
)

var _ datasources.Store = (*Repository)(nil)

// Repository stores each record kind in its own table, one column per field.
// It has no change notifications; wrap it in a datasources.Poller to subscribe.
type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type column struct {
	field    string
	name     string
	numeric  bool
	nullable bool
}

type table struct {
	name    string
	columns []column
}

func (t table) columnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

func (t table) column(field string) (column, bool) {
	for _, c := range t.columns {
		if c.field == field {
			return c, true
		}
	}
	return column{}, false
}

func text(field, name string) column     { return column{field: field, name: name} }
func optional(field, name string) column { return column{field: field, name: name, nullable: true} }
func integer(field, name string) column  { return column{field: field, name: name, numeric: true} }

var interactionColumns = []column{
	text("id", "id"),
	text("recommendationId", "recommendation_id"),
	text("userId", "user_id"),
}

var tables = map[domain.Kind]table{
	domain.KindUser: {name: "users", columns: []column{
		text("id", "id"),
		text("email", "email"),
		text("username", "username"),
		optional("avatarUrl", "avatar_url"),
		optional("spotifyUrl", "spotify_url"),
		optional("instagramUrl", "instagram_url"),
		optional("soundcloudUrl", "soundcloud_url"),
		optional("youtubeUrl", "youtube_url"),
		optional("tiktokUrl", "tiktok_url"),
		optional("twitterUrl", "twitter_url"),
		optional("bandcampUrl", "bandcamp_url"),
		optional("appleMusicUrl", "apple_music_url"),
		integer("createdAt", "created_at"),
	}},
	domain.KindRecommendation: {name: "recommendations", columns: []column{
		text("id", "id"),
		text("userId", "user_id"),
		text("section", "section"),
		text("category", "category"),
		text("title", "title"),
		text("description", "description"),
		optional("url", "url"),
		optional("imageUrl", "image_url"),
		integer("createdAt", "created_at"),
	}},
	domain.KindRating: {name: "ratings", columns: append(slices.Clone(interactionColumns),
		integer("stars", "stars"),
		integer("createdAt", "created_at"),
	)},
	domain.KindRecommend: {name: "recommends", columns: append(slices.Clone(interactionColumns),
		integer("createdAt", "created_at"),
	)},
	domain.KindComment: {name: "comments", columns: append(slices.Clone(interactionColumns),
		text("content", "content"),
		integer("createdAt", "created_at"),
	)},
	domain.KindShare: {name: "shares", columns: append(slices.Clone(interactionColumns),
		integer("createdAt", "created_at"),
	)},
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFields(row rowScanner, t table) (datasources.Fields, error) {
	dest := make([]any, len(t.columns))
	for i, c := range t.columns {
		if c.numeric {
			dest[i] = new(sql.NullInt64)
		} else {
			dest[i] = new(sql.NullString)
		}
	}

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	fields := make(datasources.Fields, len(t.columns))
	for i, c := range t.columns {
		switch v := dest[i].(type) {
		case *sql.NullInt64:
			if v.Valid {
				fields[c.field] = v.Int64
			}
		case *sql.NullString:
			if v.Valid {
				fields[c.field] = v.String
			}
		}
	}
	return fields, nil
}

func (r *Repository) Query(ctx context.Context, spec datasources.QuerySpec) (domain.Snapshot, error) {
	var snap domain.Snapshot
	for _, kind := range domain.Kinds {
		filter, ok := spec[kind]
		if !ok {
			continue
		}
		if err := r.queryKind(ctx, kind, filter, &snap); err != nil {
			return domain.Snapshot{}, err
		}
	}
	return snap, nil
}

func (r *Repository) queryKind(
	ctx context.Context,
	kind domain.Kind,
	filter datasources.Filter,
	snap *domain.Snapshot,
) error {
	logger := domain.LoggerFromContext(ctx)
	t := tables[kind]

	sb := sqlbuilder.Select(t.columnNames()...)
	sb.From(t.name)

	conds, err := buildFilterConditions(sb, t, filter)
	if err != nil {
		return err
	}
	if len(conds) > 0 {
		sb.Where(conds...)
	}
	sb.OrderBy("created_at", "id")

	query, args := sb.Build()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("running %s query: %w", t.name, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		fields, err := scanFields(rows, t)
		if err != nil {
			return fmt.Errorf("scanning %s: %w", t.name, err)
		}

		rec, err := datasources.DecodeRecord(kind, fields)
		if err != nil {
			logger.WarnContext(ctx, "skipping malformed record", "table", t.name, "id", fields["id"], "error", err)
			continue
		}
		if err := snap.Append(rec); err != nil {
			return fmt.Errorf("building snapshot: %w", err)
		}
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("closing rows iterator: %w", err)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}

	return nil
}

func buildFilterConditions(sb *sqlbuilder.SelectBuilder, t table, filter datasources.Filter) ([]string, error) {
	fields := make([]string, 0, len(filter))
	for field := range filter {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	conds := make([]string, 0, len(fields))
	for _, field := range fields {
		c, ok := t.column(field)
		if !ok || c.numeric {
			return nil, fmt.Errorf("%s cannot be filtered on field %q", t.name, field)
		}
		conds = append(conds, sb.Equal(c.name, filter[field]))
	}
	return conds, nil
}

// Transact applies the batch in one SQL transaction. Each touched row is locked
// as it is read, so concurrent batches on the same record are serialised.
func (r *Repository) Transact(ctx context.Context, batch datasources.Batch) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, op := range batch {
		if err := applyOperation(ctx, tx, op); err != nil {
			return fmt.Errorf("applying operation %d of batch: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func applyOperation(ctx context.Context, tx *sql.Tx, op datasources.Operation) error {
	t, ok := tables[op.Kind]
	if !ok {
		return fmt.Errorf("%w: unknown kind %q", datasources.ErrRejected, op.Kind)
	}

	current, err := fetchForUpdate(ctx, tx, t, op.ID)
	if err != nil {
		return err
	}

	next, err := datasources.ApplyOperation(current, op)
	if err != nil {
		return err
	}

	var (
		query string
		args  []any
	)
	switch {
	case next == nil && current == nil:
		return nil
	case next == nil:
		db := sqlbuilder.DeleteFrom(t.name)
		db.Where(db.Equal("id", op.ID))
		query, args = db.Build()
	case current == nil:
		ib := sqlbuilder.InsertInto(t.name)
		ib.Cols(t.columnNames()...)
		values, err := columnValues(t, next)
		if err != nil {
			return err
		}
		ib.Values(values...)
		query, args = ib.Build()
	default:
		ub := sqlbuilder.Update(t.name)
		values, err := columnValues(t, next)
		if err != nil {
			return err
		}
		assignments := make([]string, 0, len(t.columns))
		for i, c := range t.columns {
			if c.field == "id" {
				continue
			}
			assignments = append(assignments, ub.Assign(c.name, values[i]))
		}
		ub.Set(assignments...)
		ub.Where(ub.Equal("id", op.ID))
		query, args = ub.Build()
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("writing %s [%s]: %w", t.name, op.ID, err)
	}
	return nil
}

func fetchForUpdate(ctx context.Context, tx *sql.Tx, t table, id string) (datasources.Fields, error) {
	sb := sqlbuilder.Select(t.columnNames()...)
	sb.From(t.name)
	sb.Where(sb.Equal("id", id))
	sb.ForUpdate()

	query, args := sb.Build()
	fields, err := scanFields(tx.QueryRowContext(ctx, query, args...), t)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s [%s]: %w", t.name, id, err)
	}
	return fields, nil
}

func columnValues(t table, fields datasources.Fields) ([]any, error) {
	values := make([]any, len(t.columns))
	for i, c := range t.columns {
		v, ok := fields[c.field]
		switch {
		case !ok && c.nullable:
			values[i] = nil
		case !ok && c.numeric:
			values[i] = int64(0)
		case !ok:
			values[i] = ""
		case c.numeric:
			n, err := toInt64(v)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", t.name, c.name, err)
			}
			values[i] = n
		default:
			s, isString := v.(string)
			if !isString {
				return nil, fmt.Errorf("%s.%s: expected string, got %T", t.name, c.name, v)
			}
			values[i] = s
		}
	}
	return values, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
