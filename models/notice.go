package models

import (
	"time"

	"github.com/google/uuid"
)

// Notice is an announcement posted by a teacher or admin
type Notice struct {
	ID        uuid.UUID   `json:"_id" db:"id"`
	Title     string      `json:"title" db:"title"`
	Content   string      `json:"content" db:"content"`
	AuthorID  uuid.UUID   `json:"-" db:"created_by"`
	Author    UserSummary `json:"createdBy"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}

// NewNotice creates a new Notice authored by authorID.
// Author is resolved by the store when the notice is persisted.
func NewNotice(title, content string, authorID uuid.UUID) *Notice {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &Notice{
		ID:        uuid.New(),
		Title:     title,
		Content:   content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAuthoredBy reports whether userID wrote the notice
func (n *Notice) IsAuthoredBy(userID uuid.UUID) bool {
	return n.AuthorID == userID
}
