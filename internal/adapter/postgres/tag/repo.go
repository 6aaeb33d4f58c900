// Package tag implements the tag repository using PostgreSQL.
// Tags are deduplicated by name via upsert: the unique constraint on name is
// the dedup key, shared across all tag types. Dream links live in the
// dream_tags join table and are insert-only.
package tag

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oneirolab/oneiro-backend/internal/adapter/postgres"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new tag repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// The DO UPDATE arm is a no-op write so RETURNING yields the existing row on
// conflict; DO NOTHING would return nothing. The winning type is whichever
// upsert ran first for that name.
const upsertByNameSQL = `
INSERT INTO tags (name, type) VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id, name, type, created_at`

const linkSQL = `
INSERT INTO dream_tags (dream_id, tag_id) VALUES ($1, $2)
ON CONFLICT (dream_id, tag_id) DO NOTHING`

// UpsertByName creates a tag or returns the existing one with the same name,
// regardless of type. Invoking it twice with the same name yields one row.
func (r *Repo) UpsertByName(ctx context.Context, name string, tagType domain.TagType) (*domain.Tag, error) {
	var t domain.Tag
	err := r.db.QueryRow(ctx, upsertByNameSQL, name, tagType).
		Scan(&t.ID, &t.Name, &t.Type, &t.CreatedAt)
	if err != nil {
		return nil, mapError(err, name)
	}
	return &t, nil
}

// LinkDream inserts one link per tag id in a single batch. Duplicate links
// are ignored. The batch either fully executes or fails as a unit from the
// caller's point of view.
func (r *Repo) LinkDream(ctx context.Context, dreamID uuid.UUID, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tagID := range tagIDs {
		batch.Queue(linkSQL, dreamID, tagID)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range tagIDs {
		if _, err := results.Exec(); err != nil {
			return mapError(err, dreamID)
		}
	}
	return nil
}

// Popular returns tags ordered by how many dreams use them (count desc,
// name asc as tiebreaker), optionally filtered by type, capped at limit.
// Returns an empty slice (not nil) when there are no tags.
func (r *Repo) Popular(ctx context.Context, tagType *domain.TagType, limit int) ([]domain.PopularTag, error) {
	builder := squirrel.
		Select("t.id", "t.name", "t.type", "COUNT(dt.dream_id) AS dream_count").
		From("tags t").
		LeftJoin("dream_tags dt ON dt.tag_id = t.id").
		GroupBy("t.id", "t.name", "t.type").
		OrderBy("dream_count DESC", "t.name ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	if tagType != nil {
		builder = builder.Where(squirrel.Eq{"t.type": *tagType})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build popular tags query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}
	defer rows.Close()

	tags := []domain.PopularTag{}
	for rows.Next() {
		var t domain.PopularTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.DreamCount); err != nil {
			return nil, fmt.Errorf("popular tags: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("popular tags: %w", err)
	}

	return tags, nil
}

// TagsByDreamID returns the tags linked to one dream ordered by name.
func (r *Repo) TagsByDreamID(ctx context.Context, dreamID uuid.UUID) ([]domain.Tag, error) {
	const sql = `
SELECT t.id, t.name, t.type, t.created_at
FROM dream_tags dt
JOIN tags t ON dt.tag_id = t.id
WHERE dt.dream_id = $1
ORDER BY t.name`

	rows, err := r.db.Query(ctx, sql, dreamID)
	if err != nil {
		return nil, fmt.Errorf("tags by dream: %w", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Type, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("tags by dream: %w", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tags by dream: %w", err)
	}

	return tags, nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id any) error {
	return postgres.MapError(err, "tag", id)
}
