package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote единственный источник истины о том, голосовал ли пользователь
// за пост и в каком направлении. Не более одного голоса на пару
// (user_id, post_id) — уникальный индекс в базе.
type Vote struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	PostID    uuid.UUID `db:"post_id" json:"post_id"`
	Direction string    `db:"direction" json:"direction"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// VoteResult итог применения голоса: актуальные счётчики поста и
// итоговое состояние голоса пользователя (nil, если голос снят).
type VoteResult struct {
	Upvotes   int     `json:"upvotes"`
	Downvotes int     `json:"downvotes"`
	Score     int     `json:"score"`
	UserVote  *string `json:"user_vote"`
}
