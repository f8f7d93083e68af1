package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/upb/notice-board/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) ExistsWithRole(ctx context.Context, role models.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

// MockNoticeRepository is a mock implementation of NoticeRepository
type MockNoticeRepository struct {
	mock.Mock
}

func (m *MockNoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

func (m *MockNoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	args := m.Called(ctx, id)
	if notice := args.Get(0); notice != nil {
		return notice.(*models.Notice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoticeRepository) List(ctx context.Context) ([]*models.Notice, error) {
	args := m.Called(ctx)
	if notices := args.Get(0); notices != nil {
		return notices.([]*models.Notice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockNoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
