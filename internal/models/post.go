package models

import (
	"time"

	"github.com/google/uuid"
)

// Post описывает публикацию. AuthorID == nil для анонимных постов.
// Счётчики Upvotes/Downvotes/Score поддерживаются инкрементально и
// изменяются только агрегатором голосов; Status меняется только
// модерацией.
type Post struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	SpaceID   *uuid.UUID `db:"space_id" json:"space_id,omitempty"`
	AuthorID  *uuid.UUID `db:"author_id" json:"author_id,omitempty"`
	Title     string     `db:"title" json:"title"`
	Body      string     `db:"body" json:"body"`
	Status    string     `db:"status" json:"status"`
	Upvotes   int        `db:"upvotes" json:"upvotes"`
	Downvotes int        `db:"downvotes" json:"downvotes"`
	Score     int        `db:"score" json:"score"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Comment описывает комментарий к посту. ParentID != nil для ответов.
type Comment struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	PostID    uuid.UUID  `db:"post_id" json:"post_id"`
	AuthorID  uuid.UUID  `db:"author_id" json:"author_id"`
	ParentID  *uuid.UUID `db:"parent_id" json:"parent_id,omitempty"`
	Body      string     `db:"body" json:"body"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}
