package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification уведомление пользователю о действии другого пользователя.
type Notification struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	UserID    uuid.UUID  `db:"user_id" json:"user_id"`
	ActorID   uuid.UUID  `db:"actor_id" json:"actor_id"`
	Type      string     `db:"type" json:"type"`
	PostID    *uuid.UUID `db:"post_id" json:"post_id,omitempty"`
	CommentID *uuid.UUID `db:"comment_id" json:"comment_id,omitempty"`
	SpaceID   *uuid.UUID `db:"space_id" json:"space_id,omitempty"`
	IsRead    bool       `db:"is_read" json:"is_read"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// NotificationRefs ссылки на сущности, к которым относится уведомление.
// Вместе с (user, actor, type) образуют ключ дедупликации.
type NotificationRefs struct {
	PostID    *uuid.UUID
	CommentID *uuid.UUID
	SpaceID   *uuid.UUID
}
