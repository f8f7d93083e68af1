package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the role of a user. The same type is embedded in session tokens.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RoleTeacher, RoleStudent}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User represents an account able to sign in to the notice board
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	FullName     string    `json:"fullName" db:"full_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewUser creates a new User instance. passwordHash must already be hashed.
// Timestamps carry microsecond precision, matching what Postgres stores.
func NewUser(email, passwordHash string, role Role, fullName string) *User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		FullName:     fullName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Actor returns the identity a session for u carries
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, FullName: u.FullName}
}

// Summary returns the author view of the user joined onto notices
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		FullName: u.FullName,
		Role:     u.Role,
	}
}

// UserSummary is the subset of a user exposed as a notice author
type UserSummary struct {
	ID       uuid.UUID `json:"_id"`
	FullName string    `json:"fullName"`
	Role     Role      `json:"role"`
}
