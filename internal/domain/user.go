package domain

import (
	"context"
	"time"
)

// RoleAdmin grants access to the administrative event endpoints.
const RoleAdmin = "admin"

// UserShort is the public view of a user referenced by an event or request.
// swagger:model UserShort
type UserShort struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// UserRepository looks up users. User CRUD lives in a separate service.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*UserShort, error)
}

// Principal is the identity carried by a verified bearer token.
type Principal struct {
	UserID string
	Roles  []string
}

// HasRole reports whether the principal carries role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for a user.
type TokenIssuer interface {
	Issue(userID string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its principal.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}
