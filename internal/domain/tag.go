package domain

import "time"

// TagType classifies a tag by the analysis field it came from.
type TagType string

const (
	TagTypeSymbol    TagType = "symbol"
	TagTypeArchetype TagType = "archetype"
	TagTypeTheme     TagType = "theme"
)

// Valid reports whether t is one of the known tag types.
func (t TagType) Valid() bool {
	switch t {
	case TagTypeSymbol, TagTypeArchetype, TagTypeTheme:
		return true
	}
	return false
}

// Tag is a lazily created, name-deduplicated label. Name is unique across
// the whole tag namespace regardless of type: two dreams producing the same
// symbol text resolve to the same row.
type Tag struct {
	ID        int64
	Name      string
	Type      TagType
	CreatedAt time.Time
}

// PopularTag is a tag with its usage count for the browsing surface.
type PopularTag struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Type       TagType `json:"type"`
	DreamCount int     `json:"dream_count"`
}
