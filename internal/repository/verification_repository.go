package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/appedme/konvo-backend/internal/models"
)

// ErrVerificationNotFound возвращается, когда запрос на верификацию не найден.
var ErrVerificationNotFound = errors.New("verification request not found")

// ErrVerificationPendingExists возвращается при попытке создать второй
// pending запрос для того же пользователя или сообщества.
var ErrVerificationPendingExists = errors.New("pending verification request already exists")

// VerificationRepository отвечает за работу с таблицей verification_requests.
// Смена статуса запроса выполняется только в ModerationRepository.
type VerificationRepository struct {
	db *sqlx.DB
}

// NewVerificationRepository создаёт экземпляр репозитория.
func NewVerificationRepository(db *sqlx.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

// Create создаёт запрос на верификацию. Уникальность pending-запроса на
// субъект обеспечивает частичный уникальный индекс в базе.
func (r *VerificationRepository) Create(ctx context.Context, request *models.VerificationRequest) error {
	query := `
		INSERT INTO verification_requests (user_id, space_id, requested_by, justification)
		VALUES ($1, $2, $3, $4)
		RETURNING id, status, created_at
	`
	err := r.db.QueryRowxContext(
		ctx, query,
		request.UserID, request.SpaceID, request.RequestedBy, request.Justification,
	).Scan(&request.ID, &request.Status, &request.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrVerificationPendingExists
		}
		return fmt.Errorf("verification repository: create %w", err)
	}
	return nil
}

// GetByID возвращает запрос по идентификатору.
func (r *VerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error) {
	var request models.VerificationRequest
	if err := r.db.GetContext(ctx, &request, `SELECT * FROM verification_requests WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("verification repository: get by id %w", err)
	}
	return &request, nil
}

// ListPending возвращает очередь нерассмотренных запросов (старые первыми).
func (r *VerificationRepository) ListPending(ctx context.Context, limit, offset int) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	query := `SELECT * FROM verification_requests WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &requests, query, models.VerificationStatusPending, limit, offset); err != nil {
		return nil, fmt.Errorf("verification repository: list pending %w", err)
	}
	return requests, nil
}

// ListByRequester возвращает запросы, поданные пользователем.
func (r *VerificationRepository) ListByRequester(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.VerificationRequest, error) {
	var requests []models.VerificationRequest
	query := `SELECT * FROM verification_requests WHERE requested_by = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &requests, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("verification repository: list by requester %w", err)
	}
	return requests, nil
}

// CountPending возвращает длину очереди нерассмотренных запросов.
func (r *VerificationRepository) CountPending(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM verification_requests WHERE status = $1`, models.VerificationStatusPending); err != nil {
		return 0, fmt.Errorf("verification repository: count pending %w", err)
	}
	return count, nil
}
