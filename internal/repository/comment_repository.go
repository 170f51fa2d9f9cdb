package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/appedme/konvo-backend/internal/models"
)

// ErrCommentNotFound возвращается, когда комментарий не найден.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository отвечает за работу с таблицей comments.
type CommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository создаёт экземпляр репозитория.
func NewCommentRepository(db *sqlx.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create создаёт комментарий.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (post_id, author_id, parent_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		comment.PostID, comment.AuthorID, comment.ParentID, comment.Body,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt); err != nil {
		return fmt.Errorf("comment repository: create %w", err)
	}
	return nil
}

// GetByID возвращает комментарий по идентификатору.
func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.GetContext(ctx, &comment, `SELECT * FROM comments WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("comment repository: get by id %w", err)
	}
	return &comment, nil
}

// ListByPost возвращает комментарии поста с пагинацией.
func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	var comments []models.Comment
	query := `
		SELECT * FROM comments WHERE post_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &comments, query, postID, limit, offset); err != nil {
		return nil, fmt.Errorf("comment repository: list by post %w", err)
	}
	return comments, nil
}

// Delete удаляет комментарий.
func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("comment repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("comment repository: delete rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrCommentNotFound
	}

	return nil
}

// CountByPost возвращает число комментариев поста.
func (r *CommentRepository) CountByPost(ctx context.Context, postID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID); err != nil {
		return 0, fmt.Errorf("comment repository: count by post %w", err)
	}
	return count, nil
}
