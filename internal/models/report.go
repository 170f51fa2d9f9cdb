package models

import (
	"time"

	"github.com/google/uuid"
)

// Report жалоба пользователя на пост, комментарий, пользователя или
// сообщество. Заполнен ровно один из target-указателей. После перехода
// в терминальный статус жалоба не изменяется, кроме аудит-полей.
type Report struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	ReporterID    uuid.UUID  `db:"reporter_id" json:"reporter_id"`
	TargetPostID  *uuid.UUID `db:"target_post_id" json:"target_post_id,omitempty"`
	TargetCommentID *uuid.UUID `db:"target_comment_id" json:"target_comment_id,omitempty"`
	TargetUserID  *uuid.UUID `db:"target_user_id" json:"target_user_id,omitempty"`
	TargetSpaceID *uuid.UUID `db:"target_space_id" json:"target_space_id,omitempty"`
	Reason        string     `db:"reason" json:"reason"`
	Description   *string    `db:"description" json:"description,omitempty"`
	Status        string     `db:"status" json:"status"`
	ReviewedBy    *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// VerificationRequest запрос на бейдж верификации для пользователя или
// сообщества. Заполнен ровно один из UserID/SpaceID.
type VerificationRequest struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	UserID        *uuid.UUID `db:"user_id" json:"user_id,omitempty"`
	SpaceID       *uuid.UUID `db:"space_id" json:"space_id,omitempty"`
	RequestedBy   uuid.UUID  `db:"requested_by" json:"requested_by"`
	Justification string     `db:"justification" json:"justification"`
	Status        string     `db:"status" json:"status"`
	ReviewedBy    *uuid.UUID `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `db:"reviewed_at" json:"reviewed_at,omitempty"`
	ReviewNotes   *string    `db:"review_notes" json:"review_notes,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// ModerationAction неизменяемая append-only запись аудита: кто, что,
// с кем и почему сделал. Создаётся в одной транзакции с самим решением.
type ModerationAction struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	ModeratorID     uuid.UUID  `db:"moderator_id" json:"moderator_id"`
	Action          string     `db:"action" json:"action"`
	Reason          *string    `db:"reason" json:"reason,omitempty"`
	ReportID        *uuid.UUID `db:"report_id" json:"report_id,omitempty"`
	VerificationID  *uuid.UUID `db:"verification_id" json:"verification_id,omitempty"`
	TargetUserID    *uuid.UUID `db:"target_user_id" json:"target_user_id,omitempty"`
	TargetSpaceID   *uuid.UUID `db:"target_space_id" json:"target_space_id,omitempty"`
	TargetPostID    *uuid.UUID `db:"target_post_id" json:"target_post_id,omitempty"`
	TargetCommentID *uuid.UUID `db:"target_comment_id" json:"target_comment_id,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}
