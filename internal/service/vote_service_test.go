package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// mockVoteRepository воспроизводит toggle-семантику хранилища голосов в памяти.
type mockVoteRepository struct {
	votes map[uuid.UUID]string // ключ — только userID: в тестах один пост
	post  *models.Post
}

func newMockVoteRepository(post *models.Post) *mockVoteRepository {
	return &mockVoteRepository{votes: make(map[uuid.UUID]string), post: post}
}

func (m *mockVoteRepository) Cast(ctx context.Context, userID, postID uuid.UUID, direction string) (*models.VoteResult, bool, error) {
	if m.post == nil || m.post.ID != postID {
		return nil, false, repository.ErrPostNotFound
	}

	created := false
	existing, ok := m.votes[userID]
	switch {
	case !ok:
		m.votes[userID] = direction
		m.applyDelta(direction, 1)
		created = true
	case existing == direction:
		delete(m.votes, userID)
		m.applyDelta(direction, -1)
	default:
		m.votes[userID] = direction
		m.applyDelta(existing, -1)
		m.applyDelta(direction, 1)
	}

	result := &models.VoteResult{
		Upvotes:   m.post.Upvotes,
		Downvotes: m.post.Downvotes,
		Score:     m.post.Score,
	}
	if dir, ok := m.votes[userID]; ok {
		d := dir
		result.UserVote = &d
	}
	return result, created, nil
}

func (m *mockVoteRepository) applyDelta(direction string, delta int) {
	if direction == models.VoteDirectionUp {
		m.post.Upvotes += delta
	} else {
		m.post.Downvotes += delta
	}
	m.post.Score = m.post.Upvotes - m.post.Downvotes
}

func (m *mockVoteRepository) GetUserVote(ctx context.Context, userID, postID uuid.UUID) (*string, error) {
	if dir, ok := m.votes[userID]; ok {
		d := dir
		return &d, nil
	}
	return nil, nil
}

// mockPostReader отдаёт фиксированный пост.
type mockPostReader struct {
	post *models.Post
}

func (m *mockPostReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	if m.post != nil && m.post.ID == id {
		return m.post, nil
	}
	return nil, repository.ErrPostNotFound
}

func newVoteFixture(authorID *uuid.UUID) (*VoteService, *mockVoteRepository, *mockNotificationRepository, *models.Post) {
	post := &models.Post{ID: uuid.New(), AuthorID: authorID}
	votes := newMockVoteRepository(post)
	notificationRepo := newMockNotificationRepository()
	notifications := NewNotificationService(notificationRepo, time.Minute)
	service := NewVoteService(votes, &mockPostReader{post: post}, notifications)
	return service, votes, notificationRepo, post
}

func TestVoteService_CastToggleCycle(t *testing.T) {
	author := uuid.New()
	service, _, _, post := newVoteFixture(&author)
	voter := uuid.New()
	ctx := context.Background()

	// Первый апвоут.
	res, err := service.Cast(ctx, voter, post.ID, models.VoteDirectionUp)
	if err != nil {
		t.Fatalf("первый голос вернул ошибку: %v", err)
	}
	if res.Upvotes != 1 || res.Score != 1 || res.UserVote == nil || *res.UserVote != models.VoteDirectionUp {
		t.Fatalf("после апвоута ожидали up=1 score=1 vote=up, получили %+v", res)
	}

	// Переключение на даунвоут.
	res, err = service.Cast(ctx, voter, post.ID, models.VoteDirectionDown)
	if err != nil {
		t.Fatalf("переключение вернуло ошибку: %v", err)
	}
	if res.Upvotes != 0 || res.Downvotes != 1 || res.Score != -1 {
		t.Fatalf("после переключения ожидали up=0 down=1 score=-1, получили %+v", res)
	}

	// Повторный даунвоут снимает голос.
	res, err = service.Cast(ctx, voter, post.ID, models.VoteDirectionDown)
	if err != nil {
		t.Fatalf("снятие голоса вернуло ошибку: %v", err)
	}
	if res.Upvotes != 0 || res.Downvotes != 0 || res.Score != 0 || res.UserVote != nil {
		t.Fatalf("после снятия ожидали нулевые счётчики и отсутствие голоса, получили %+v", res)
	}
}

func TestVoteService_CastInvalidDirection(t *testing.T) {
	author := uuid.New()
	service, _, _, post := newVoteFixture(&author)

	_, err := service.Cast(context.Background(), uuid.New(), post.ID, "sideways")
	if !apperror.IsValidation(err) {
		t.Fatalf("ожидалась ошибка валидации, получили %v", err)
	}
}

func TestVoteService_CastPostNotFound(t *testing.T) {
	author := uuid.New()
	service, _, _, _ := newVoteFixture(&author)

	_, err := service.Cast(context.Background(), uuid.New(), uuid.New(), models.VoteDirectionUp)
	if !apperror.IsNotFound(err) {
		t.Fatalf("ожидалась ошибка not found, получили %v", err)
	}
}

func TestVoteService_FreshUpvoteNotifiesAuthor(t *testing.T) {
	author := uuid.New()
	service, _, notificationRepo, post := newVoteFixture(&author)
	voter := uuid.New()
	ctx := context.Background()

	if _, err := service.Cast(ctx, voter, post.ID, models.VoteDirectionUp); err != nil {
		t.Fatalf("голос вернул ошибку: %v", err)
	}
	if len(notificationRepo.notifications) != 1 {
		t.Fatalf("автор должен получить одно уведомление, получили %d", len(notificationRepo.notifications))
	}
	for _, n := range notificationRepo.notifications {
		if n.UserID != author || n.Type != models.NotificationTypePostUpvoted {
			t.Fatalf("неожиданное уведомление: %+v", n)
		}
	}

	// Снятие и повторный апвоут в пределах окна не плодят новые записи.
	if _, err := service.Cast(ctx, voter, post.ID, models.VoteDirectionUp); err != nil {
		t.Fatalf("снятие голоса вернуло ошибку: %v", err)
	}
	if _, err := service.Cast(ctx, voter, post.ID, models.VoteDirectionUp); err != nil {
		t.Fatalf("повторный голос вернул ошибку: %v", err)
	}
	if len(notificationRepo.notifications) != 1 {
		t.Fatalf("повторный апвоут в пределах окна должен схлопнуться, записей: %d", len(notificationRepo.notifications))
	}
}

func TestVoteService_DownvoteDoesNotNotify(t *testing.T) {
	author := uuid.New()
	service, _, notificationRepo, post := newVoteFixture(&author)

	if _, err := service.Cast(context.Background(), uuid.New(), post.ID, models.VoteDirectionDown); err != nil {
		t.Fatalf("голос вернул ошибку: %v", err)
	}
	if len(notificationRepo.notifications) != 0 {
		t.Fatalf("даунвоут не должен порождать уведомлений, записей: %d", len(notificationRepo.notifications))
	}
}

func TestVoteService_SelfUpvoteDoesNotNotify(t *testing.T) {
	author := uuid.New()
	service, _, notificationRepo, post := newVoteFixture(&author)

	if _, err := service.Cast(context.Background(), author, post.ID, models.VoteDirectionUp); err != nil {
		t.Fatalf("голос вернул ошибку: %v", err)
	}
	if len(notificationRepo.notifications) != 0 {
		t.Fatalf("автор не уведомляется о собственном голосе, записей: %d", len(notificationRepo.notifications))
	}
}

func TestVoteService_AnonymousPostDoesNotNotify(t *testing.T) {
	service, _, notificationRepo, post := newVoteFixture(nil)

	if _, err := service.Cast(context.Background(), uuid.New(), post.ID, models.VoteDirectionUp); err != nil {
		t.Fatalf("голос вернул ошибку: %v", err)
	}
	if len(notificationRepo.notifications) != 0 {
		t.Fatalf("у анонимного поста некого уведомлять, записей: %d", len(notificationRepo.notifications))
	}
}
