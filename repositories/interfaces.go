package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/notice-board/models"
)

var (
	// ErrNotFound is returned when a lookup matches no record
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user with the same email already exists
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidAuthor is returned when a notice references a user that does not exist
	ErrInvalidAuthor = errors.New("notice author does not exist")
)

// UserRepository handles user data operations
type UserRepository interface {
	// Create creates a new user. Email uniqueness is enforced by the store.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email (exact match)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ExistsWithRole reports whether at least one user has the given role
	ExistsWithRole(ctx context.Context, role models.Role) (bool, error)
}

// NoticeRepository handles notice data operations
type NoticeRepository interface {
	// Create persists a notice and fills in its author summary
	Create(ctx context.Context, notice *models.Notice) error

	// GetByID retrieves a notice with its author summary
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error)

	// List returns all notices, newest first
	List(ctx context.Context) ([]*models.Notice, error)

	// Delete removes a notice. Deleting a missing notice returns ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repositories aggregates all repositories
type Repositories struct {
	Users   UserRepository
	Notices NoticeRepository
}
