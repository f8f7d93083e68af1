package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/notice-board/models"
)

var (
	// ErrMissingClaim is returned when a required claim is missing
	ErrMissingClaim = errors.New("missing required claim")

	// ErrInvalidClaim is returned when a claim has an unexpected value
	ErrInvalidClaim = errors.New("invalid claim")
)

// Claims are the session token claims. id, role and fullName mirror the
// authenticated user; sub duplicates id for standard tooling.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string      `json:"id"`
	Role     models.Role `json:"role"`
	FullName string      `json:"fullName"`
}

func newClaims(actor models.Actor) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: actor.ID.String(),
		},
		UserID:   actor.ID.String(),
		Role:     actor.Role,
		FullName: actor.FullName,
	}
}

// Actor converts validated claims into the request identity
func (c *Claims) Actor() (models.Actor, error) {
	if c.UserID == "" {
		return models.Actor{}, fmt.Errorf("%w: id", ErrMissingClaim)
	}
	id, err := uuid.Parse(c.UserID)
	if err != nil {
		return models.Actor{}, fmt.Errorf("%w: id: %v", ErrInvalidClaim, err)
	}
	if c.Subject != "" && c.Subject != c.UserID {
		return models.Actor{}, fmt.Errorf("%w: sub does not match id", ErrInvalidClaim)
	}
	if !c.Role.IsValid() {
		return models.Actor{}, fmt.Errorf("%w: role %q", ErrInvalidClaim, c.Role)
	}

	return models.Actor{
		ID:       id,
		Role:     c.Role,
		FullName: c.FullName,
	}, nil
}
