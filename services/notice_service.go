package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/upb/notice-board/internal/policy"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories"
	"github.com/upb/notice-board/utils"
	"go.uber.org/zap"
)

// CreateNoticeInput carries the fields for a new notice
type CreateNoticeInput struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// NoticeService manages notices
type NoticeService struct {
	notices repositories.NoticeRepository
	users   repositories.UserRepository
	logger  *zap.Logger
}

// NewNoticeService creates a new NoticeService. users backs the admin
// re-check on delete.
func NewNoticeService(notices repositories.NoticeRepository, users repositories.UserRepository, logger *zap.Logger) *NoticeService {
	return &NoticeService{
		notices: notices,
		users:   users,
		logger:  logger,
	}
}

// List returns all notices, newest first
func (s *NoticeService) List(ctx context.Context, actor models.Actor) ([]*models.Notice, error) {
	if d := policy.Decide(policy.Request{Actor: actor, Action: policy.ActionListNotices}); !d.Allowed {
		return nil, ErrForbidden
	}

	notices, err := s.notices.List(ctx)
	if err != nil {
		return nil, WrapInternal("failed to list notices", err)
	}
	return notices, nil
}

// Create posts a notice authored by actor
func (s *NoticeService) Create(ctx context.Context, actor models.Actor, in CreateNoticeInput) (*models.Notice, error) {
	if d := policy.Decide(policy.Request{Actor: actor, Action: policy.ActionCreateNotice}); !d.Allowed {
		return nil, ErrCreateNoticeForbidden
	}

	if err := utils.ValidateStruct(in); err != nil {
		return nil, invalidInput(err)
	}

	notice := models.NewNotice(in.Title, in.Content, actor.ID)
	if err := s.notices.Create(ctx, notice); err != nil {
		if errors.Is(err, repositories.ErrInvalidAuthor) {
			return nil, ErrInvalidAuthor.Wrap(err)
		}
		return nil, WrapInternal("failed to create notice", err)
	}

	s.logger.Info("notice created",
		zap.String("notice_id", notice.ID.String()),
		zap.String("author_id", actor.ID.String()))
	return notice, nil
}

// Get returns a single notice
func (s *NoticeService) Get(ctx context.Context, actor models.Actor, id uuid.UUID) (*models.Notice, error) {
	if d := policy.Decide(policy.Request{Actor: actor, Action: policy.ActionListNotices}); !d.Allowed {
		return nil, ErrForbidden
	}

	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoticeNotFound.Wrap(err)
		}
		return nil, WrapInternal("failed to load notice", err)
	}
	return notice, nil
}

// Delete removes a notice if actor is its author or an admin.
// Deleting someone else's notice requires the admin role to be confirmed
// against the store.
func (s *NoticeService) Delete(ctx context.Context, actor models.Actor, id uuid.UUID) error {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNoticeNotFound.Wrap(err)
		}
		return WrapInternal("failed to load notice", err)
	}

	if actor.Role == models.RoleAdmin && !notice.IsAuthoredBy(actor.ID) {
		current, err := currentActor(ctx, s.users, actor)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				s.logger.Warn("admin token for unknown user",
					zap.String("user_id", actor.ID.String()),
					zap.String("notice_id", id.String()))
				return ErrDeleteNoticeForbidden
			}
			return WrapInternal("failed to load acting user", err)
		}
		actor = current
	}

	d := policy.Decide(policy.Request{
		Actor:           actor,
		Action:          policy.ActionDeleteNotice,
		ResourceOwnerID: notice.AuthorID,
	})
	if !d.Allowed {
		s.logger.Info("notice delete denied",
			zap.String("notice_id", id.String()),
			zap.String("user_id", actor.ID.String()),
			zap.String("reason", d.Reason))
		return ErrDeleteNoticeForbidden
	}

	if err := s.notices.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNoticeNotFound.Wrap(err)
		}
		return WrapInternal("failed to delete notice", err)
	}

	s.logger.Info("notice deleted",
		zap.String("notice_id", id.String()),
		zap.String("deleted_by", actor.ID.String()),
		zap.String("reason", d.Reason))
	return nil
}
