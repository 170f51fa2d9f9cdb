package models

import (
	"time"

	"github.com/google/uuid"
)

// Space описывает сообщество, внутри которого публикуются посты.
type Space struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description,omitempty"`
	AvatarID    *uuid.UUID `db:"avatar_id" json:"avatar_id,omitempty"`
	IsVerified  bool       `db:"is_verified" json:"is_verified"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// SpaceMember членство пользователя в сообществе.
type SpaceMember struct {
	SpaceID  uuid.UUID `db:"space_id" json:"space_id"`
	UserID   uuid.UUID `db:"user_id" json:"user_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}
