package domain

import "github.com/google/uuid"

// RequesterIdentity carries the caller's identity signals into the pipelines.
// UserID is a durable, token-verified account id. AnonymousID is a
// self-declared identifier the client persists locally to group anonymous
// contributions. Either, both, or neither may be present; every consumer
// must treat ambiguity as "deny".
type RequesterIdentity struct {
	UserID      *uuid.UUID
	AnonymousID string
}

// IsAuthenticated reports whether a durable identity is present.
func (r RequesterIdentity) IsAuthenticated() bool {
	return r.UserID != nil && *r.UserID != uuid.Nil
}

// IsAnonymous reports whether a transient identity is present.
func (r RequesterIdentity) IsAnonymous() bool {
	return r.AnonymousID != ""
}
