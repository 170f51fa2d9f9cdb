package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
	"github.com/appedme/konvo-backend/internal/validation"
)

// UserStore описывает взаимодействие сервиса с хранилищем пользователей.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, displayName string, bio *string, avatarID *uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int, error)
	SetRole(ctx context.Context, userID uuid.UUID, role string) error
	Unban(ctx context.Context, userID uuid.UUID) error
}

// UpdateProfileInput параметры обновления профиля.
type UpdateProfileInput struct {
	DisplayName string
	Bio         *string
	AvatarID    *uuid.UUID
}

// UserService содержит бизнес-логику работы с профилями пользователей.
type UserService struct {
	users UserStore
}

// NewUserService создаёт новый сервис пользователей.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetProfile возвращает пользователя по идентификатору.
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername возвращает пользователя по имени.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile обновляет профиль пользователя.
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*models.User, error) {
	displayName := strings.TrimSpace(input.DisplayName)
	if err := validation.ValidateDisplayName(displayName); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if input.Bio != nil {
		if err := validation.ValidateBio(input.Bio); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	if err := s.users.UpdateProfile(ctx, userID, displayName, input.Bio, input.AvatarID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
