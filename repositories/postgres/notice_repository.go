package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/upb/notice-board/models"
	"github.com/upb/notice-board/repositories"
	"go.uber.org/zap"
)

const noticeSelect = `
	SELECT n.id, n.title, n.content, n.created_by, n.created_at, n.updated_at,
	       u.id, u.full_name, u.role
	FROM notices n
	JOIN users u ON u.id = n.created_by
`

// NoticeRepository implements the repositories.NoticeRepository interface
type NoticeRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewNoticeRepository creates a new notice repository
func NewNoticeRepository(db *DB, logger *zap.Logger) repositories.NoticeRepository {
	return &NoticeRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts the notice and joins its author in the same statement
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	query := `
		WITH inserted AS (
			INSERT INTO notices (id, title, content, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_by
		)
		SELECT u.id, u.full_name, u.role
		FROM inserted i
		JOIN users u ON u.id = i.created_by
	`

	err := r.db.QueryRowContext(ctx, query,
		notice.ID,
		notice.Title,
		notice.Content,
		notice.AuthorID,
		notice.CreatedAt,
		notice.UpdatedAt,
	).Scan(&notice.Author.ID, &notice.Author.FullName, &notice.Author.Role)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return fmt.Errorf("failed to create notice by %s: %w", notice.AuthorID, repositories.ErrInvalidAuthor)
		}
		return fmt.Errorf("failed to create notice: %w", err)
	}

	r.logger.Debug("notice created",
		zap.String("id", notice.ID.String()),
		zap.String("author_id", notice.AuthorID.String()))
	return nil
}

// GetByID retrieves a notice by ID
func (r *NoticeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notice, error) {
	notice, err := scanNotice(r.db.QueryRowContext(ctx, noticeSelect+` WHERE n.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notice %s: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}
	return notice, nil
}

// List returns every notice, newest first
func (r *NoticeRepository) List(ctx context.Context) ([]*models.Notice, error) {
	rows, err := r.db.QueryContext(ctx, noticeSelect+` ORDER BY n.created_at DESC, n.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	notices := make([]*models.Notice, 0)
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}
		notices = append(notices, notice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notices: %w", err)
	}

	return notices, nil
}

// Delete removes a notice
func (r *NoticeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("notice %s: %w", id, repositories.ErrNotFound)
	}

	r.logger.Debug("notice deleted", zap.String("id", id.String()))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotice(row rowScanner) (*models.Notice, error) {
	notice := &models.Notice{}
	err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Content,
		&notice.AuthorID,
		&notice.CreatedAt,
		&notice.UpdatedAt,
		&notice.Author.ID,
		&notice.Author.FullName,
		&notice.Author.Role,
	)
	if err != nil {
		return nil, err
	}
	return notice, nil
}
