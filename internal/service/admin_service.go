package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// adminStatsTTL время жизни кэшированной сводки аналитики.
const adminStatsTTL = time.Minute

// AdminStatsCounters читает агрегаты для сводки админки.
type AdminStatsCounters interface {
	CountUsers(ctx context.Context) (int, error)
	CountPosts(ctx context.Context, status string) (int, error)
	CountPendingReports(ctx context.Context) (int, error)
	CountPendingVerifications(ctx context.Context) (int, error)
}

// AdminStats сводка аналитики для админки.
type AdminStats struct {
	TotalUsers           int `json:"total_users"`
	PublishedPosts       int `json:"published_posts"`
	RejectedPosts        int `json:"rejected_posts"`
	PendingReports       int `json:"pending_reports"`
	PendingVerifications int `json:"pending_verifications"`
}

// AdminService содержит операции бэк-офиса: управление пользователями
// и аналитика. Сводка кэшируется в памяти, чтобы не гонять COUNT-ы на
// каждый запрос дашборда.
type AdminService struct {
	users    UserStore
	counters AdminStatsCounters
	cache    *CacheService
}

// NewAdminService создаёт новый сервис админки.
func NewAdminService(users UserStore, counters AdminStatsCounters, cache *CacheService) *AdminService {
	return &AdminService{users: users, counters: counters, cache: cache}
}

// ListUsers возвращает список пользователей. Только для модераторов.
func (s *AdminService) ListUsers(ctx context.Context, role string, limit, offset int) ([]models.User, error) {
	if !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}
	limit, offset = normalizePagination(limit, offset)
	return s.users.List(ctx, limit, offset)
}

// SetRole меняет роль пользователя. Только для админов.
func (s *AdminService) SetRole(ctx context.Context, actorRole string, userID uuid.UUID, newRole string) error {
	if actorRole != models.RoleAdmin {
		return apperror.ErrForbidden
	}
	if _, ok := models.ValidRoles[newRole]; !ok {
		return apperror.New(apperror.ErrCodeValidation, "неизвестная роль")
	}

	if err := s.users.SetRole(ctx, userID, newRole); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}
	return nil
}

// Unban снимает бан с пользователя. Только для модераторов.
func (s *AdminService) Unban(ctx context.Context, actorRole string, userID uuid.UUID) error {
	if !models.IsModeratorRole(actorRole) {
		return apperror.ErrForbidden
	}

	if err := s.users.Unban(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.ErrUserNotFound
		}
		return err
	}
	return nil
}

// Stats возвращает сводку аналитики. Только для модераторов.
func (s *AdminService) Stats(ctx context.Context, role string) (*AdminStats, error) {
	if !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}

	value, err := s.cache.GetOrSet(ctx, AdminStatsCacheKey(), adminStatsTTL, func() (interface{}, error) {
		return s.collectStats(ctx)
	})
	if err != nil {
		return nil, err
	}

	stats, ok := value.(*AdminStats)
	if !ok {
		return s.collectStats(ctx)
	}
	return stats, nil
}

func (s *AdminService) collectStats(ctx context.Context) (*AdminStats, error) {
	stats := &AdminStats{}

	var err error
	if stats.TotalUsers, err = s.counters.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.PublishedPosts, err = s.counters.CountPosts(ctx, models.PostStatusPublished); err != nil {
		return nil, err
	}
	if stats.RejectedPosts, err = s.counters.CountPosts(ctx, models.PostStatusRejected); err != nil {
		return nil, err
	}
	if stats.PendingReports, err = s.counters.CountPendingReports(ctx); err != nil {
		return nil, err
	}
	if stats.PendingVerifications, err = s.counters.CountPendingVerifications(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
