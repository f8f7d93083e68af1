// Package memory provides map-backed repositories for development and tests.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories"
)

// Store holds users and notices behind a single lock so notice creation
// can check its author atomically.
type Store struct {
	mu sync.RWMutex

	users   map[uuid.UUID]models.User
	byEmail map[string]uuid.UUID
	notices map[uuid.UUID]models.Notice
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{
		users:   make(map[uuid.UUID]models.User),
		byEmail: make(map[string]uuid.UUID),
		notices: make(map[uuid.UUID]models.Notice),
	}
}

// Repositories exposes the store through the repository interfaces
func (s *Store) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Users:   &userRepository{store: s},
		Notices: &noticeRepository{store: s},
	}
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(_ context.Context, user *models.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return fmt.Errorf("failed to create user %s: %w", user.Email, repositories.ErrDuplicateEmail)
	}
	s.users[user.ID] = *user
	s.byEmail[user.Email] = user.ID
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repositories.ErrNotFound)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user for email %s: %w", email, repositories.ErrNotFound)
	}
	user := s.users[id]
	return &user, nil
}

func (r *userRepository) ExistsWithRole(_ context.Context, role models.Role) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Role == role {
			return true, nil
		}
	}
	return false, nil
}

type noticeRepository struct {
	store *Store
}

func (r *noticeRepository) Create(_ context.Context, notice *models.Notice) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	author, ok := s.users[notice.AuthorID]
	if !ok {
		return fmt.Errorf("failed to create notice by %s: %w", notice.AuthorID, repositories.ErrInvalidAuthor)
	}
	notice.Author = author.Summary()
	s.notices[notice.ID] = *notice
	return nil
}

func (r *noticeRepository) GetByID(_ context.Context, id uuid.UUID) (*models.Notice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	notice, ok := s.notices[id]
	if !ok {
		return nil, fmt.Errorf("notice %s: %w", id, repositories.ErrNotFound)
	}
	return &notice, nil
}

func (r *noticeRepository) List(_ context.Context) ([]*models.Notice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*models.Notice, 0, len(s.notices))
	for _, notice := range s.notices {
		n := notice
		items = append(items, &n)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return bytes.Compare(items[i].ID[:], items[j].ID[:]) > 0
	})
	return items, nil
}

func (r *noticeRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notices[id]; !ok {
		return fmt.Errorf("notice %s: %w", id, repositories.ErrNotFound)
	}
	delete(s.notices, id)
	return nil
}
