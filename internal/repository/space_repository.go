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

// ErrSpaceNotFound возвращается, когда сообщество не найдено.
var ErrSpaceNotFound = errors.New("space not found")

// SpaceRepository отвечает за работу с таблицами spaces и space_members.
type SpaceRepository struct {
	db *sqlx.DB
}

// NewSpaceRepository создаёт экземпляр репозитория.
func NewSpaceRepository(db *sqlx.DB) *SpaceRepository {
	return &SpaceRepository{db: db}
}

// Create создаёт сообщество и добавляет создателя в участники.
func (r *SpaceRepository) Create(ctx context.Context, space *models.Space) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("space repository: begin tx %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, `
		INSERT INTO spaces (slug, name, description, avatar_id, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_verified, created_at, updated_at
	`, space.Slug, space.Name, space.Description, space.AvatarID, space.CreatedBy).
		Scan(&space.ID, &space.IsVerified, &space.CreatedAt, &space.UpdatedAt); err != nil {
		return fmt.Errorf("space repository: create %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO space_members (space_id, user_id) VALUES ($1, $2)
	`, space.ID, space.CreatedBy); err != nil {
		return fmt.Errorf("space repository: add creator member %w", err)
	}

	return tx.Commit()
}

// GetByID возвращает сообщество по идентификатору.
func (r *SpaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error) {
	var space models.Space
	if err := r.db.GetContext(ctx, &space, `SELECT * FROM spaces WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("space repository: get by id %w", err)
	}
	return &space, nil
}

// GetBySlug возвращает сообщество по slug.
func (r *SpaceRepository) GetBySlug(ctx context.Context, slug string) (*models.Space, error) {
	var space models.Space
	if err := r.db.GetContext(ctx, &space, `SELECT * FROM spaces WHERE slug = $1`, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("space repository: get by slug %w", err)
	}
	return &space, nil
}

// List возвращает сообщества с пагинацией.
func (r *SpaceRepository) List(ctx context.Context, limit, offset int) ([]models.Space, error) {
	var spaces []models.Space
	query := `SELECT * FROM spaces ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &spaces, query, limit, offset); err != nil {
		return nil, fmt.Errorf("space repository: list %w", err)
	}
	return spaces, nil
}

// AddMember добавляет участника. Повторное вступление — no-op.
func (r *SpaceRepository) AddMember(ctx context.Context, spaceID, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO space_members (space_id, user_id) VALUES ($1, $2)
		ON CONFLICT (space_id, user_id) DO NOTHING
	`, spaceID, userID); err != nil {
		return fmt.Errorf("space repository: add member %w", err)
	}
	return nil
}

// RemoveMember удаляет участника.
func (r *SpaceRepository) RemoveMember(ctx context.Context, spaceID, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM space_members WHERE space_id = $1 AND user_id = $2
	`, spaceID, userID); err != nil {
		return fmt.Errorf("space repository: remove member %w", err)
	}
	return nil
}

// IsMember проверяет членство пользователя.
func (r *SpaceRepository) IsMember(ctx context.Context, spaceID, userID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(SELECT 1 FROM space_members WHERE space_id = $1 AND user_id = $2)
	`, spaceID, userID); err != nil {
		return false, fmt.Errorf("space repository: is member %w", err)
	}
	return exists, nil
}

// CountMembers возвращает число участников сообщества.
func (r *SpaceRepository) CountMembers(ctx context.Context, spaceID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM space_members WHERE space_id = $1
	`, spaceID); err != nil {
		return 0, fmt.Errorf("space repository: count members %w", err)
	}
	return count, nil
}
