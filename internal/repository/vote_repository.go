package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/repository/common"
)

// VoteRepository отвечает за голоса и счётчики постов. Только этот
// репозиторий изменяет поля upvotes/downvotes/score.
type VoteRepository struct {
	db *sqlx.DB
}

// NewVoteRepository создаёт экземпляр репозитория.
func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Cast применяет голос с toggle-семантикой в одной транзакции:
//   - голоса не было: создаём голос, счётчик направления +1;
//   - голос в том же направлении: снимаем голос, счётчик -1;
//   - голос в другом направлении: переключаем, старый счётчик -1, новый +1.
//
// Счётчики обновляются атомарными дельтами (`upvotes = upvotes + N`),
// поэтому конкурентные голоса по одному посту не теряют обновлений.
// Возвращает актуальные счётчики, итоговое состояние голоса и признак
// того, что голос был создан заново (а не снят или переключён).
func (r *VoteRepository) Cast(ctx context.Context, userID, postID uuid.UUID, direction string) (*models.VoteResult, bool, error) {
	var result models.VoteResult
	var created bool

	err := common.WithTransaction(ctx, r.db, func(tx *sqlx.Tx) error {
		var postExists bool
		if err := tx.GetContext(ctx, &postExists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID); err != nil {
			return fmt.Errorf("vote repository: check post %w", err)
		}
		if !postExists {
			return ErrPostNotFound
		}

		var existing models.Vote
		err := tx.GetContext(ctx, &existing, `
			SELECT id, user_id, post_id, direction, created_at, updated_at
			FROM votes
			WHERE user_id = $1 AND post_id = $2
			FOR UPDATE
		`, userID, postID)

		var upDelta, downDelta int

		switch {
		case errors.Is(err, sql.ErrNoRows):
			// Нового голоса не было: создаём.
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO votes (user_id, post_id, direction) VALUES ($1, $2, $3)
			`, userID, postID, direction); err != nil {
				return fmt.Errorf("vote repository: insert vote %w", err)
			}
			if direction == models.VoteDirectionUp {
				upDelta = 1
			} else {
				downDelta = 1
			}
			dir := direction
			result.UserVote = &dir
			created = true

		case err != nil:
			return fmt.Errorf("vote repository: get vote %w", err)

		case existing.Direction == direction:
			// Повторный клик в том же направлении — снимаем голос.
			if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE id = $1`, existing.ID); err != nil {
				return fmt.Errorf("vote repository: delete vote %w", err)
			}
			if direction == models.VoteDirectionUp {
				upDelta = -1
			} else {
				downDelta = -1
			}
			result.UserVote = nil

		default:
			// Переключение направления: старый счётчик -1, новый +1.
			if _, err := tx.ExecContext(ctx, `
				UPDATE votes SET direction = $2, updated_at = NOW() WHERE id = $1
			`, existing.ID, direction); err != nil {
				return fmt.Errorf("vote repository: switch vote %w", err)
			}
			if direction == models.VoteDirectionUp {
				upDelta = 1
				downDelta = -1
			} else {
				upDelta = -1
				downDelta = 1
			}
			dir := direction
			result.UserVote = &dir
		}

		// score поддерживается как upvotes - downvotes той же дельтой,
		// без пересчёта по таблице votes.
		if err := tx.QueryRowxContext(ctx, `
			UPDATE posts
			SET upvotes = upvotes + $2,
				downvotes = downvotes + $3,
				score = score + $2 - $3,
				updated_at = NOW()
			WHERE id = $1
			RETURNING upvotes, downvotes, score
		`, postID, upDelta, downDelta).Scan(&result.Upvotes, &result.Downvotes, &result.Score); err != nil {
			return fmt.Errorf("vote repository: update tallies %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return &result, created, nil
}

// GetUserVote возвращает направление голоса пользователя за пост или
// nil, если голоса нет.
func (r *VoteRepository) GetUserVote(ctx context.Context, userID, postID uuid.UUID) (*string, error) {
	var direction string
	err := r.db.GetContext(ctx, &direction,
		`SELECT direction FROM votes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("vote repository: get user vote %w", err)
	}
	return &direction, nil
}
