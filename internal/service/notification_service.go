package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// DefaultNotificationDedupWindow окно, в пределах которого одинаковые
// уведомления схлопываются в одно.
const DefaultNotificationDedupWindow = 60 * time.Second

// NotificationRepository описывает взаимодействие сервиса с хранилищем уведомлений.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FindRecent(ctx context.Context, userID, actorID uuid.UUID, ntype string, refs models.NotificationRefs, since time.Time) (*models.Notification, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

// NotificationPusher доставляет уведомление подключённым клиентам.
// Реализуется websocket-хабом.
type NotificationPusher interface {
	BroadcastToUser(userID uuid.UUID, event string, data any) error
}

// NotificationService содержит бизнес-логику работы с уведомлениями.
type NotificationService struct {
	repo        NotificationRepository
	pusher      NotificationPusher
	dedupWindow time.Duration
}

// NewNotificationService создаёт новый сервис уведомлений.
func NewNotificationService(repo NotificationRepository, dedupWindow time.Duration) *NotificationService {
	if dedupWindow <= 0 {
		dedupWindow = DefaultNotificationDedupWindow
	}
	return &NotificationService{repo: repo, dedupWindow: dedupWindow}
}

// SetPusher подключает доставку уведомлений по websocket.
func (s *NotificationService) SetPusher(pusher NotificationPusher) {
	s.pusher = pusher
}

// Notify создаёт уведомление пользователю о действии актора.
//
// Пользователь никогда не уведомляется о собственном действии: при
// target == actor возвращается (nil, nil). Идентичное уведомление,
// созданное в пределах окна дедупликации, возвращается как есть вместо
// создания нового. Проверка check-then-create сознательно не обёрнута
// в транзакцию: редкий дубликат при гонке допустим.
func (s *NotificationService) Notify(ctx context.Context, targetUserID, actorID uuid.UUID, ntype string, refs models.NotificationRefs) (*models.Notification, error) {
	if targetUserID == actorID {
		return nil, nil
	}

	since := time.Now().Add(-s.dedupWindow)
	existing, err := s.repo.FindRecent(ctx, targetUserID, actorID, ntype, refs, since)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	notification := &models.Notification{
		UserID:    targetUserID,
		ActorID:   actorID,
		Type:      ntype,
		PostID:    refs.PostID,
		CommentID: refs.CommentID,
		SpaceID:   refs.SpaceID,
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return nil, err
	}

	// Доставка по websocket best-effort: о неудаче только пишем в лог.
	if s.pusher != nil {
		if err := s.pusher.BroadcastToUser(targetUserID, ntype, notification); err != nil && logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"user_id": targetUserID,
				"type":    ntype,
				"error":   err.Error(),
			}).Warn("notification service: не удалось доставить уведомление по ws")
		}
	}

	return notification, nil
}

// GetNotification возвращает уведомление по идентификатору.
func (s *NotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	return s.getOwned(ctx, id)
}

func (s *NotificationService) getOwned(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	notification, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return nil, apperror.New(apperror.ErrCodeNotFound, "уведомление не найдено")
		}
		return nil, err
	}
	return notification, nil
}

// ListNotifications возвращает список уведомлений пользователя.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.repo.List(ctx, userID, limit, offset, unreadOnly)
}

// MarkAsRead отмечает уведомление как прочитанное. Доступно только владельцу.
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	notification, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead отмечает все уведомления пользователя как прочитанные.
func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// DeleteNotification удаляет уведомление. Доступно только владельцу.
func (s *NotificationService) DeleteNotification(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	notification, err := s.getOwned(ctx, id)
	if err != nil {
		return err
	}

	if notification.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// CountUnread возвращает количество непрочитанных уведомлений пользователя.
func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
