package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oneirolab/oneiro-backend/internal/domain"
)

// SeedDream inserts a minimal dream row owned by the given identity and
// returns its id. Pass a zero identity for an unowned record.
func SeedDream(t *testing.T, pool *pgxpool.Pool, owner domain.RequesterIdentity) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var anonID *string
	if owner.AnonymousID != "" {
		anonID = &owner.AnonymousID
	}

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO dreams (
		    dream_text, title, summary, interpretation, reflection_question,
		    identified_symbols, identified_archetypes, identified_themes,
		    user_id, anonymous_user_id
		 ) VALUES ($1, $2, $3, $4, $5, '[]', '[]', '[]', $6, $7)
		 RETURNING id`,
		"seed dream text", "Seed", "seed summary", "seed interpretation", "seed question",
		owner.UserID, anonID,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: seed dream: %v", err)
	}

	return id
}
