package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// VoteRepository описывает взаимодействие сервиса с хранилищем голосов.
type VoteRepository interface {
	Cast(ctx context.Context, userID, postID uuid.UUID, direction string) (*models.VoteResult, bool, error)
	GetUserVote(ctx context.Context, userID, postID uuid.UUID) (*string, error)
}

// VotePostReader читает посты ровно настолько, насколько нужно сервису
// голосования: для определения автора при отправке уведомления.
type VotePostReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
}

// VoteService содержит бизнес-логику голосования за посты.
type VoteService struct {
	votes         VoteRepository
	posts         VotePostReader
	notifications *NotificationService
}

// NewVoteService создаёт новый сервис голосования.
func NewVoteService(votes VoteRepository, posts VotePostReader, notifications *NotificationService) *VoteService {
	return &VoteService{votes: votes, posts: posts, notifications: notifications}
}

// Cast применяет голос пользователя к посту.
//
// Повторный голос в том же направлении снимает его, голос в противоположном
// направлении переключает. Счётчики поста обновляются атомарно вместе с
// записью голоса; возвращаемый результат отражает состояние после операции.
func (s *VoteService) Cast(ctx context.Context, userID, postID uuid.UUID, direction string) (*models.VoteResult, error) {
	if _, ok := models.ValidVoteDirections[direction]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "направление голоса должно быть up или down")
	}

	result, created, err := s.votes.Cast(ctx, userID, postID, direction)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, apperror.ErrPostNotFound
		}
		return nil, err
	}

	// Автор поста узнаёт о новом апвоуте. Снятие и переключение голоса
	// уведомлений не порождают. Ошибка уведомления не ломает голосование.
	if created && direction == models.VoteDirectionUp {
		s.notifyAuthor(ctx, userID, postID)
	}

	return result, nil
}

// GetUserVote возвращает текущий голос пользователя за пост, либо nil.
func (s *VoteService) GetUserVote(ctx context.Context, userID, postID uuid.UUID) (*string, error) {
	return s.votes.GetUserVote(ctx, userID, postID)
}

func (s *VoteService) notifyAuthor(ctx context.Context, voterID, postID uuid.UUID) {
	if s.notifications == nil || s.posts == nil {
		return
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		logger.Log.WithField("post_id", postID).WithError(err).Warn("vote service: не удалось прочитать пост для уведомления")
		return
	}
	if post.AuthorID == nil {
		return
	}

	refs := models.NotificationRefs{PostID: &postID}
	if _, err := s.notifications.Notify(ctx, *post.AuthorID, voterID, models.NotificationTypePostUpvoted, refs); err != nil {
		logger.Log.WithField("post_id", postID).WithError(err).Warn("vote service: не удалось создать уведомление об апвоуте")
	}
}
