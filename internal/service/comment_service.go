package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
	"github.com/appedme/konvo-backend/internal/validation"
)

// CommentStore описывает взаимодействие сервиса с хранилищем комментариев.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uuid.UUID, limit, offset int) ([]models.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByPost(ctx context.Context, postID uuid.UUID) (int, error)
}

// CommentService содержит бизнес-логику комментариев.
type CommentService struct {
	comments      CommentStore
	posts         VotePostReader
	notifications *NotificationService
}

// NewCommentService создаёт новый сервис комментариев.
func NewCommentService(comments CommentStore, posts VotePostReader, notifications *NotificationService) *CommentService {
	return &CommentService{comments: comments, posts: posts, notifications: notifications}
}

// CreateComment добавляет комментарий к посту. Автор поста получает
// уведомление post_commented; при ответе на комментарий его автор
// получает comment_replied. Уведомления best-effort.
func (s *CommentService) CreateComment(ctx context.Context, authorID, postID uuid.UUID, parentID *uuid.UUID, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if err := validation.ValidateCommentBody(body); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, err
	}

	var parent *models.Comment
	if parentID != nil {
		parent, err = s.comments.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return nil, apperror.New(apperror.ErrCodeNotFound, "родительский комментарий не найден")
			}
			return nil, err
		}
		if parent.PostID != postID {
			return nil, apperror.New(apperror.ErrCodeValidation, "родительский комментарий относится к другому посту")
		}
	}

	comment := &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		ParentID: parentID,
		Body:     body,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	refs := models.NotificationRefs{PostID: &postID, CommentID: &comment.ID}
	if post.AuthorID != nil {
		if _, err := s.notifications.Notify(ctx, *post.AuthorID, authorID, models.NotificationTypePostCommented, refs); err != nil {
			logger.Log.WithField("post_id", postID).WithError(err).Warn("comment service: не удалось создать уведомление о комментарии")
		}
	}
	if parent != nil {
		if _, err := s.notifications.Notify(ctx, parent.AuthorID, authorID, models.NotificationTypeCommentReplied, refs); err != nil {
			logger.Log.WithField("comment_id", *parentID).WithError(err).Warn("comment service: не удалось создать уведомление об ответе")
		}
	}

	return comment, nil
}

// ListComments возвращает комментарии поста (старые первыми).
func (s *CommentService) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]models.Comment, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.comments.ListByPost(ctx, postID, limit, offset)
}

// CountComments возвращает число комментариев поста.
func (s *CommentService) CountComments(ctx context.Context, postID uuid.UUID) (int, error) {
	return s.comments.CountByPost(ctx, postID)
}

// DeleteComment удаляет комментарий. Доступно автору либо модератору.
func (s *CommentService) DeleteComment(ctx context.Context, id, userID uuid.UUID, role string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return apperror.New(apperror.ErrCodeNotFound, "комментарий не найден")
		}
		return err
	}

	if comment.AuthorID != userID && !models.IsModeratorRole(role) {
		return apperror.ErrForbidden
	}

	return s.comments.Delete(ctx, id)
}
