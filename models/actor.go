package models

import "github.com/google/uuid"

// Actor is the authenticated identity behind a request, as carried in a session token
type Actor struct {
	ID       uuid.UUID `json:"id"`
	Role     Role      `json:"role"`
	FullName string    `json:"fullName"`
}
