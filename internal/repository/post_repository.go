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

// ErrPostNotFound возвращается, когда пост не найден.
var ErrPostNotFound = errors.New("post not found")

// PostRepository отвечает за работу с таблицей posts.
// Счётчики голосов поста этот репозиторий не трогает (см. VoteRepository).
type PostRepository struct {
	db *sqlx.DB
}

// NewPostRepository создаёт экземпляр репозитория.
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create создаёт пост.
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (space_id, author_id, title, body, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, upvotes, downvotes, score, created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		post.SpaceID, post.AuthorID, post.Title, post.Body, post.Status,
	).Scan(&post.ID, &post.Upvotes, &post.Downvotes, &post.Score, &post.CreatedAt, &post.UpdatedAt); err != nil {
		return fmt.Errorf("post repository: create %w", err)
	}
	return nil
}

// GetByID возвращает пост по идентификатору.
func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	if err := r.db.GetContext(ctx, &post, `SELECT * FROM posts WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("post repository: get by id %w", err)
	}
	return &post, nil
}

// List возвращает опубликованные посты с пагинацией.
// spaceID / authorID опциональные фильтры.
func (r *PostRepository) List(ctx context.Context, spaceID, authorID *uuid.UUID, limit, offset int) ([]models.Post, error) {
	query := `SELECT * FROM posts WHERE status = $1`
	args := []interface{}{models.PostStatusPublished}
	argIndex := 2

	if spaceID != nil {
		query += fmt.Sprintf(" AND space_id = $%d", argIndex)
		args = append(args, *spaceID)
		argIndex++
	}
	if authorID != nil {
		query += fmt.Sprintf(" AND author_id = $%d", argIndex)
		args = append(args, *authorID)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	var posts []models.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("post repository: list %w", err)
	}
	return posts, nil
}

// Search ищет опубликованные посты по подстроке в заголовке или теле.
// Без ранжирования: простой ILIKE фильтр.
func (r *PostRepository) Search(ctx context.Context, term string, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	query := `
		SELECT * FROM posts
		WHERE status = $1 AND (title ILIKE '%' || $2 || '%' OR body ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`
	if err := r.db.SelectContext(ctx, &posts, query, models.PostStatusPublished, term, limit, offset); err != nil {
		return nil, fmt.Errorf("post repository: search %w", err)
	}
	return posts, nil
}

// Delete удаляет пост. Разрешено только автору (проверяется в сервисе).
func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("post repository: delete %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("post repository: delete rows affected %w", err)
	}
	if rowsAffected == 0 {
		return ErrPostNotFound
	}

	return nil
}

// Count возвращает число постов по статусу ("" — все).
func (r *PostRepository) Count(ctx context.Context, status string) (int, error) {
	var count int
	if status == "" {
		if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`); err != nil {
			return 0, fmt.Errorf("post repository: count %w", err)
		}
		return count, nil
	}

	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE status = $1`, status); err != nil {
		return 0, fmt.Errorf("post repository: count %w", err)
	}
	return count, nil
}
