package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает сущность пользователя платформы.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	Username     string     `db:"username" json:"username"`
	PasswordHash string     `db:"password_hash" json:"-"`
	DisplayName  string     `db:"display_name" json:"display_name"`
	Bio          *string    `db:"bio" json:"bio,omitempty"`
	AvatarID     *uuid.UUID `db:"avatar_id" json:"avatar_id,omitempty"`
	Role         string     `db:"role" json:"role"`
	IsVerified   bool       `db:"is_verified" json:"is_verified"`
	IsBanned     bool       `db:"is_banned" json:"is_banned"`
	BanReason    *string    `db:"ban_reason" json:"ban_reason,omitempty"`
	BannedAt     *time.Time `db:"banned_at" json:"banned_at,omitempty"`
	BannedBy     *uuid.UUID `db:"banned_by" json:"banned_by,omitempty"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
