package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/logger"
	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

func init() {
	logger.Init("error")
}

// mockNotificationRepository реализует NotificationRepository для тестов.
type mockNotificationRepository struct {
	notifications map[uuid.UUID]*models.Notification
}

func newMockNotificationRepository() *mockNotificationRepository {
	return &mockNotificationRepository{notifications: make(map[uuid.UUID]*models.Notification)}
}

func (m *mockNotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	m.notifications[n.ID] = n
	return nil
}

func (m *mockNotificationRepository) FindRecent(ctx context.Context, userID, actorID uuid.UUID, ntype string, refs models.NotificationRefs, since time.Time) (*models.Notification, error) {
	for _, n := range m.notifications {
		if n.UserID != userID || n.ActorID != actorID || n.Type != ntype {
			continue
		}
		if !uuidPtrEqual(n.PostID, refs.PostID) || !uuidPtrEqual(n.CommentID, refs.CommentID) || !uuidPtrEqual(n.SpaceID, refs.SpaceID) {
			continue
		}
		if n.CreatedAt.Before(since) {
			continue
		}
		return n, nil
	}
	return nil, nil
}

func (m *mockNotificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	if n, ok := m.notifications[id]; ok {
		return n, nil
	}
	return nil, repository.ErrNotificationNotFound
}

func (m *mockNotificationRepository) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range m.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, *n)
	}
	return out, nil
}

func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	if n, ok := m.notifications[id]; ok {
		n.IsRead = true
		return nil
	}
	return repository.ErrNotificationNotFound
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	for _, n := range m.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (m *mockNotificationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.notifications, id)
	return nil
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func uuidPtrEqual(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// mockPusher запоминает доставленные события.
type mockPusher struct {
	delivered []string
	err       error
}

func (m *mockPusher) BroadcastToUser(userID uuid.UUID, event string, data any) error {
	m.delivered = append(m.delivered, event)
	return m.err
}

func TestNotificationService_NotifySkipsSelf(t *testing.T) {
	repo := newMockNotificationRepository()
	service := NewNotificationService(repo, time.Minute)

	userID := uuid.New()
	n, err := service.Notify(context.Background(), userID, userID, models.NotificationTypePostUpvoted, models.NotificationRefs{})
	if err != nil {
		t.Fatalf("notify вернул ошибку: %v", err)
	}
	if n != nil {
		t.Fatalf("уведомление о собственном действии не должно создаваться")
	}
	if len(repo.notifications) != 0 {
		t.Fatalf("хранилище должно остаться пустым, записей: %d", len(repo.notifications))
	}
}

func TestNotificationService_NotifyDeduplicates(t *testing.T) {
	repo := newMockNotificationRepository()
	service := NewNotificationService(repo, time.Minute)

	target := uuid.New()
	actor := uuid.New()
	postID := uuid.New()
	refs := models.NotificationRefs{PostID: &postID}

	first, err := service.Notify(context.Background(), target, actor, models.NotificationTypePostUpvoted, refs)
	if err != nil {
		t.Fatalf("первый notify вернул ошибку: %v", err)
	}

	second, err := service.Notify(context.Background(), target, actor, models.NotificationTypePostUpvoted, refs)
	if err != nil {
		t.Fatalf("второй notify вернул ошибку: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("повторное уведомление в пределах окна должно схлопнуться в существующее")
	}
	if len(repo.notifications) != 1 {
		t.Fatalf("ожидалась одна запись, получили %d", len(repo.notifications))
	}

	// Другой пост с тем же типом — уже не дубликат.
	otherPost := uuid.New()
	third, err := service.Notify(context.Background(), target, actor, models.NotificationTypePostUpvoted, models.NotificationRefs{PostID: &otherPost})
	if err != nil {
		t.Fatalf("третий notify вернул ошибку: %v", err)
	}
	if third.ID == first.ID {
		t.Fatalf("уведомление с другой ссылкой не должно дедуплицироваться")
	}
}

func TestNotificationService_NotifyPushes(t *testing.T) {
	repo := newMockNotificationRepository()
	service := NewNotificationService(repo, time.Minute)
	pusher := &mockPusher{}
	service.SetPusher(pusher)

	_, err := service.Notify(context.Background(), uuid.New(), uuid.New(), models.NotificationTypePostCommented, models.NotificationRefs{})
	if err != nil {
		t.Fatalf("notify вернул ошибку: %v", err)
	}
	if len(pusher.delivered) != 1 || pusher.delivered[0] != models.NotificationTypePostCommented {
		t.Fatalf("ожидалась доставка события %q, получили %v", models.NotificationTypePostCommented, pusher.delivered)
	}
}

func TestNotificationService_NotifySurvivesPushFailure(t *testing.T) {
	repo := newMockNotificationRepository()
	service := NewNotificationService(repo, time.Minute)
	service.SetPusher(&mockPusher{err: context.DeadlineExceeded})

	n, err := service.Notify(context.Background(), uuid.New(), uuid.New(), models.NotificationTypePostUpvoted, models.NotificationRefs{})
	if err != nil {
		t.Fatalf("ошибка доставки не должна ломать создание: %v", err)
	}
	if n == nil || n.ID == uuid.Nil {
		t.Fatalf("уведомление должно быть сохранено несмотря на сбой доставки")
	}
}

func TestNotificationService_MarkAsReadOwnerOnly(t *testing.T) {
	repo := newMockNotificationRepository()
	service := NewNotificationService(repo, time.Minute)

	owner := uuid.New()
	n, err := service.Notify(context.Background(), owner, uuid.New(), models.NotificationTypePostUpvoted, models.NotificationRefs{})
	if err != nil {
		t.Fatalf("notify вернул ошибку: %v", err)
	}

	if err := service.MarkAsRead(context.Background(), n.ID, uuid.New()); !apperror.IsForbidden(err) {
		t.Fatalf("чужое уведомление должно вернуть forbidden, получили %v", err)
	}

	if err := service.MarkAsRead(context.Background(), n.ID, owner); err != nil {
		t.Fatalf("владелец должен иметь доступ: %v", err)
	}
	if !repo.notifications[n.ID].IsRead {
		t.Fatalf("уведомление должно быть отмечено прочитанным")
	}
}

func TestNotificationService_MarkAsReadNotFound(t *testing.T) {
	service := NewNotificationService(newMockNotificationRepository(), time.Minute)

	err := service.MarkAsRead(context.Background(), uuid.New(), uuid.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("ожидалась ошибка not found, получили %v", err)
	}
}
