package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/repository/common"
)

// ErrAlreadyDecided возвращается при попытке принять решение по жалобе
// или запросу, который уже в терминальном статусе.
var ErrAlreadyDecided = errors.New("target is no longer pending")

// ReportDecisionEffects описывает побочные эффекты решения по жалобе.
// Каждый заполненный указатель — обязательная запись: если её применить
// невозможно, всё решение откатывается.
type ReportDecisionEffects struct {
	RejectPostID    *uuid.UUID
	DeleteCommentID *uuid.UUID
	BanUserID       *uuid.UUID
	BanReason       *string
}

// VerificationDecisionEffects описывает побочные эффекты одобрения
// запроса на верификацию.
type VerificationDecisionEffects struct {
	VerifyUserID  *uuid.UUID
	VerifySpaceID *uuid.UUID
}

// ModerationRepository выполняет решения модерации как одну атомарную
// единицу записи: смена статуса, побочные эффекты и запись аудита
// фиксируются вместе либо не фиксируются вовсе.
type ModerationRepository struct {
	db *sqlx.DB
}

// NewModerationRepository создаёт экземпляр репозитория.
func NewModerationRepository(db *sqlx.DB) *ModerationRepository {
	return &ModerationRepository{db: db}
}

// DecideReport переводит жалобу из pending в терминальный статус,
// применяет побочные эффекты и добавляет запись аудита.
func (r *ModerationRepository) DecideReport(
	ctx context.Context,
	reportID, moderatorID uuid.UUID,
	newStatus string,
	effects ReportDecisionEffects,
	action *models.ModerationAction,
) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		// Условие status = 'pending' делает решение идемпотентным при
		// ретраях: повторный вызов корректно завершится ErrAlreadyDecided.
		if err := r.transitionPending(ctx, tx,
			`UPDATE reports SET status = $2, reviewed_by = $3, reviewed_at = NOW() WHERE id = $1 AND status = $4`,
			`SELECT status FROM reports WHERE id = $1`,
			reportID, newStatus, moderatorID, models.ReportStatusPending, ErrReportNotFound,
		); err != nil {
			return err
		}

		if effects.RejectPostID != nil {
			result, err := tx.ExecContext(ctx,
				`UPDATE posts SET status = $2, updated_at = NOW() WHERE id = $1`,
				*effects.RejectPostID, models.PostStatusRejected)
			if err != nil {
				return fmt.Errorf("moderation repository: reject post %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("moderation repository: reject post rows affected %w", err)
			} else if n == 0 {
				return ErrPostNotFound
			}
		}

		if effects.DeleteCommentID != nil {
			result, err := tx.ExecContext(ctx,
				`DELETE FROM comments WHERE id = $1`, *effects.DeleteCommentID)
			if err != nil {
				return fmt.Errorf("moderation repository: delete comment %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("moderation repository: delete comment rows affected %w", err)
			} else if n == 0 {
				return ErrCommentNotFound
			}
		}

		if effects.BanUserID != nil {
			result, err := tx.ExecContext(ctx, `
				UPDATE users
				SET is_banned = TRUE, ban_reason = $2, banned_at = NOW(), banned_by = $3, updated_at = NOW()
				WHERE id = $1
			`, *effects.BanUserID, effects.BanReason, moderatorID)
			if err != nil {
				return fmt.Errorf("moderation repository: ban user %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("moderation repository: ban user rows affected %w", err)
			} else if n == 0 {
				return ErrUserNotFound
			}
		}

		return r.appendAction(ctx, tx, action)
	})
}

// DecideVerification переводит запрос на верификацию из pending в
// терминальный статус, выставляет verified-флаг и добавляет запись аудита.
func (r *ModerationRepository) DecideVerification(
	ctx context.Context,
	requestID, moderatorID uuid.UUID,
	newStatus string,
	notes *string,
	effects VerificationDecisionEffects,
	action *models.ModerationAction,
) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE verification_requests
			SET status = $2, reviewed_by = $3, reviewed_at = NOW(), review_notes = $4
			WHERE id = $1 AND status = $5
		`, requestID, newStatus, moderatorID, notes, models.VerificationStatusPending)
		if err != nil {
			return fmt.Errorf("moderation repository: decide verification %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("moderation repository: decide verification rows affected %w", err)
		}
		if n == 0 {
			var status string
			err := tx.GetContext(ctx, &status, `SELECT status FROM verification_requests WHERE id = $1`, requestID)
			if errors.Is(err, sql.ErrNoRows) {
				return ErrVerificationNotFound
			}
			if err != nil {
				return fmt.Errorf("moderation repository: read verification status %w", err)
			}
			return ErrAlreadyDecided
		}

		if effects.VerifyUserID != nil {
			result, err := tx.ExecContext(ctx,
				`UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, *effects.VerifyUserID)
			if err != nil {
				return fmt.Errorf("moderation repository: verify user %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("moderation repository: verify user rows affected %w", err)
			} else if n == 0 {
				return ErrUserNotFound
			}
		}

		if effects.VerifySpaceID != nil {
			result, err := tx.ExecContext(ctx,
				`UPDATE spaces SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, *effects.VerifySpaceID)
			if err != nil {
				return fmt.Errorf("moderation repository: verify space %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("moderation repository: verify space rows affected %w", err)
			} else if n == 0 {
				return ErrSpaceNotFound
			}
		}

		return r.appendAction(ctx, tx, action)
	})
}

// BanUser банит пользователя напрямую из админки, с записью аудита в
// той же транзакции.
func (r *ModerationRepository) BanUser(ctx context.Context, userID, moderatorID uuid.UUID, reason string) error {
	return common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE users
			SET is_banned = TRUE, ban_reason = $2, banned_at = NOW(), banned_by = $3, updated_at = NOW()
			WHERE id = $1
		`, userID, reason, moderatorID)
		if err != nil {
			return fmt.Errorf("moderation repository: ban user %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("moderation repository: ban user rows affected %w", err)
		} else if n == 0 {
			return ErrUserNotFound
		}

		return r.appendAction(ctx, tx, &models.ModerationAction{
			ModeratorID:  moderatorID,
			Action:       "ban_user",
			Reason:       &reason,
			TargetUserID: &userID,
		})
	})
}

// ListActions возвращает журнал аудита (новые первыми).
func (r *ModerationRepository) ListActions(ctx context.Context, limit, offset int) ([]models.ModerationAction, error) {
	var actions []models.ModerationAction
	query := `SELECT * FROM moderation_actions ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &actions, query, limit, offset); err != nil {
		return nil, fmt.Errorf("moderation repository: list actions %w", err)
	}
	return actions, nil
}

// CountActionsByReport возвращает число записей аудита по жалобе.
func (r *ModerationRepository) CountActionsByReport(ctx context.Context, reportID uuid.UUID) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM moderation_actions WHERE report_id = $1`, reportID); err != nil {
		return 0, fmt.Errorf("moderation repository: count actions %w", err)
	}
	return count, nil
}

// transitionPending выполняет условный переход из pending и различает
// "не найдено" и "уже решено" по фактическому состоянию строки.
func (r *ModerationRepository) transitionPending(
	ctx context.Context,
	tx *sqlx.Tx,
	updateQuery, statusQuery string,
	id uuid.UUID,
	newStatus string,
	moderatorID uuid.UUID,
	pendingStatus string,
	notFoundErr error,
) error {
	result, err := tx.ExecContext(ctx, updateQuery, id, newStatus, moderatorID, pendingStatus)
	if err != nil {
		return fmt.Errorf("moderation repository: transition %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("moderation repository: transition rows affected %w", err)
	}
	if n == 0 {
		var status string
		err := tx.GetContext(ctx, &status, statusQuery, id)
		if errors.Is(err, sql.ErrNoRows) {
			return notFoundErr
		}
		if err != nil {
			return fmt.Errorf("moderation repository: read status %w", err)
		}
		return ErrAlreadyDecided
	}
	return nil
}

// appendAction добавляет запись аудита внутри транзакции решения.
func (r *ModerationRepository) appendAction(ctx context.Context, tx *sqlx.Tx, action *models.ModerationAction) error {
	var createdAt time.Time
	if err := tx.QueryRowxContext(ctx, `
		INSERT INTO moderation_actions
			(moderator_id, action, reason, report_id, verification_id, target_user_id, target_space_id, target_post_id, target_comment_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`,
		action.ModeratorID, action.Action, action.Reason,
		action.ReportID, action.VerificationID,
		action.TargetUserID, action.TargetSpaceID, action.TargetPostID, action.TargetCommentID,
	).Scan(&action.ID, &createdAt); err != nil {
		return fmt.Errorf("moderation repository: append action %w", err)
	}
	action.CreatedAt = createdAt
	return nil
}
