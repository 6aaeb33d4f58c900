// Package dream implements the dream record repository using PostgreSQL.
// Symbols, archetypes, and themes are stored as jsonb to keep their order
// (symbols/archetypes) exactly as the analysis produced them.
package dream

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/oneirolab/oneiro-backend/internal/adapter/postgres"
	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// Repo provides dream persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new dream repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const dreamColumns = `
    id, dream_text, title, summary, interpretation, reflection_question,
    identified_symbols, identified_archetypes, identified_themes,
    image_url, is_private, user_id, anonymous_user_id, created_at`

const insertSQL = `
INSERT INTO dreams (
    dream_text, title, summary, interpretation, reflection_question,
    identified_symbols, identified_archetypes, identified_themes,
    is_private, user_id, anonymous_user_id
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING` + dreamColumns

const getByIDSQL = `SELECT` + dreamColumns + ` FROM dreams WHERE id = $1`

const listByUserSQL = `
SELECT` + dreamColumns + `
FROM dreams WHERE user_id = $1 ORDER BY created_at DESC`

const listByAnonSQL = `
SELECT` + dreamColumns + `
FROM dreams WHERE anonymous_user_id = $1 ORDER BY created_at DESC`

const setImageURLSQL = `
UPDATE dreams SET image_url = $2 WHERE id = $1
RETURNING` + dreamColumns

const claimAnonymousSQL = `
UPDATE dreams SET user_id = $1, anonymous_user_id = NULL
WHERE anonymous_user_id = $2`

// Insert persists a new dream and returns the stored record with its
// generated id and timestamp.
func (r *Repo) Insert(ctx context.Context, d *domain.Dream) (*domain.Dream, error) {
	row := r.db.QueryRow(ctx, insertSQL,
		d.DreamText, d.Title, d.Summary, d.Interpretation, d.ReflectionQuestion,
		d.Symbols, d.Archetypes, d.Themes,
		d.IsPrivate, d.UserID, d.AnonymousUserID,
	)

	saved, err := scanDream(row)
	if err != nil {
		return nil, mapError(err, "insert")
	}
	return saved, nil
}

// GetByID returns a dream by primary key.
// Returns domain.ErrNotFound if no such record exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dream, error) {
	d, err := scanDream(r.db.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, mapError(err, id)
	}
	return d, nil
}

// ListByOwner returns dreams belonging to the given identity, newest first.
// Durable identity wins when both signals are present.
// Returns an empty slice (not nil) when the owner has no dreams.
func (r *Repo) ListByOwner(ctx context.Context, identity domain.RequesterIdentity) ([]*domain.Dream, error) {
	var (
		rows pgx.Rows
		err  error
	)
	switch {
	case identity.IsAuthenticated():
		rows, err = r.db.Query(ctx, listByUserSQL, *identity.UserID)
	case identity.IsAnonymous():
		rows, err = r.db.Query(ctx, listByAnonSQL, identity.AnonymousID)
	default:
		return nil, fmt.Errorf("list dreams: %w", domain.ErrValidation)
	}
	if err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}
	defer rows.Close()

	dreams := []*domain.Dream{}
	for rows.Next() {
		d, err := scanDream(rows)
		if err != nil {
			return nil, fmt.Errorf("list dreams: %w", err)
		}
		dreams = append(dreams, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list dreams: %w", err)
	}

	return dreams, nil
}

// SetImageURL attaches a generated image URL to a dream and returns the
// updated record. Returns domain.ErrNotFound if the dream does not exist.
func (r *Repo) SetImageURL(ctx context.Context, id uuid.UUID, url string) (*domain.Dream, error) {
	d, err := scanDream(r.db.QueryRow(ctx, setImageURLSQL, id, url))
	if err != nil {
		return nil, mapError(err, id)
	}
	return d, nil
}

// ClaimAnonymous reassigns every dream carrying the given anonymous id to
// the durable user, clearing the anonymous reference. Returns the number of
// dreams claimed; claiming an unknown anonymous id is not an error.
func (r *Repo) ClaimAnonymous(ctx context.Context, userID uuid.UUID, anonymousID string) (int, error) {
	tag, err := r.db.Exec(ctx, claimAnonymousSQL, userID, anonymousID)
	if err != nil {
		return 0, mapError(err, userID)
	}
	return int(tag.RowsAffected()), nil
}

// mapError converts pgx/pgconn errors into domain errors.
func mapError(err error, id any) error {
	return postgres.MapError(err, "dream", id)
}

// scanDream reads one dream row in dreamColumns order.
func scanDream(row pgx.Row) (*domain.Dream, error) {
	var d domain.Dream
	err := row.Scan(
		&d.ID, &d.DreamText, &d.Title, &d.Summary, &d.Interpretation, &d.ReflectionQuestion,
		&d.Symbols, &d.Archetypes, &d.Themes,
		&d.ImageURL, &d.IsPrivate, &d.UserID, &d.AnonymousUserID, &d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
