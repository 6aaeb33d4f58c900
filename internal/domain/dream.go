package domain

import (
	"time"

	"github.com/google/uuid"
)

// SymbolEntry is one identified dream symbol with its reading.
type SymbolEntry struct {
	Symbol  string `json:"symbol"`
	Meaning string `json:"meaning"`
}

// ArchetypeEntry is one identified Jungian archetype with its reading.
type ArchetypeEntry struct {
	Archetype      string `json:"archetype"`
	Representation string `json:"representation"`
}

// Dream is a persisted dream record: the submitted text, the normalized
// analysis, and an optional generated image. Symbols and archetypes are
// order-preserving; themes are treated as a set.
type Dream struct {
	ID                 uuid.UUID
	DreamText          string
	Title              string
	Summary            string
	Interpretation     string
	ReflectionQuestion string
	Symbols            []SymbolEntry
	Archetypes         []ArchetypeEntry
	Themes             []string
	ImageURL           *string
	IsPrivate          bool
	UserID             *uuid.UUID
	AnonymousUserID    *string
	CreatedAt          time.Time
}

// IsOwnedBy reports whether the requester owns this dream. Evaluated in
// order, first match wins; every ambiguous combination denies. A dream with
// no owner reference is not claimable by anyone.
func (d *Dream) IsOwnedBy(requester RequesterIdentity) bool {
	if requester.IsAuthenticated() && d.UserID != nil {
		return *d.UserID == *requester.UserID
	}
	if requester.IsAnonymous() && d.AnonymousUserID != nil {
		return *d.AnonymousUserID == requester.AnonymousID
	}
	// Every remaining combination of owner and requester signals denies.
	return false
}
