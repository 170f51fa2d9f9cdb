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

// SpaceStore описывает взаимодействие сервиса с хранилищем сообществ.
type SpaceStore interface {
	Create(ctx context.Context, space *models.Space) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error)
	GetBySlug(ctx context.Context, slug string) (*models.Space, error)
	List(ctx context.Context, limit, offset int) ([]models.Space, error)
	AddMember(ctx context.Context, spaceID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, spaceID, userID uuid.UUID) error
	IsMember(ctx context.Context, spaceID, userID uuid.UUID) (bool, error)
	CountMembers(ctx context.Context, spaceID uuid.UUID) (int, error)
}

// SpaceService содержит бизнес-логику сообществ.
type SpaceService struct {
	spaces SpaceStore
}

// NewSpaceService создаёт новый сервис сообществ.
func NewSpaceService(spaces SpaceStore) *SpaceService {
	return &SpaceService{spaces: spaces}
}

// CreateSpace создаёт сообщество; создатель автоматически становится
// его участником.
func (s *SpaceService) CreateSpace(ctx context.Context, creatorID uuid.UUID, name, slug string, description *string) (*models.Space, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))

	if err := validation.ValidateSpaceName(name); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateSlug(slug); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	if _, err := s.spaces.GetBySlug(ctx, slug); err == nil {
		return nil, apperror.New(apperror.ErrCodeConflict, "сообщество с таким адресом уже существует")
	} else if !errors.Is(err, repository.ErrSpaceNotFound) {
		return nil, err
	}

	space := &models.Space{
		Name:        name,
		Slug:        slug,
		Description: description,
		CreatedBy:   creatorID,
	}
	if err := s.spaces.Create(ctx, space); err != nil {
		return nil, err
	}
	return space, nil
}

// GetSpace возвращает сообщество по идентификатору.
func (s *SpaceService) GetSpace(ctx context.Context, id uuid.UUID) (*models.Space, error) {
	space, err := s.spaces.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return nil, apperror.ErrSpaceNotFound
		}
		return nil, err
	}
	return space, nil
}

// GetSpaceBySlug возвращает сообщество по адресу.
func (s *SpaceService) GetSpaceBySlug(ctx context.Context, slug string) (*models.Space, error) {
	space, err := s.spaces.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return nil, apperror.ErrSpaceNotFound
		}
		return nil, err
	}
	return space, nil
}

// ListSpaces возвращает список сообществ.
func (s *SpaceService) ListSpaces(ctx context.Context, limit, offset int) ([]models.Space, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.spaces.List(ctx, limit, offset)
}

// Join добавляет пользователя в сообщество. Повторное вступление
// безвредно.
func (s *SpaceService) Join(ctx context.Context, spaceID, userID uuid.UUID) error {
	if _, err := s.GetSpace(ctx, spaceID); err != nil {
		return err
	}
	return s.spaces.AddMember(ctx, spaceID, userID)
}

// Leave убирает пользователя из сообщества.
func (s *SpaceService) Leave(ctx context.Context, spaceID, userID uuid.UUID) error {
	if _, err := s.GetSpace(ctx, spaceID); err != nil {
		return err
	}
	return s.spaces.RemoveMember(ctx, spaceID, userID)
}

// IsMember сообщает, состоит ли пользователь в сообществе.
func (s *SpaceService) IsMember(ctx context.Context, spaceID, userID uuid.UUID) (bool, error) {
	return s.spaces.IsMember(ctx, spaceID, userID)
}

// CountMembers возвращает число участников сообщества.
func (s *SpaceService) CountMembers(ctx context.Context, spaceID uuid.UUID) (int, error) {
	return s.spaces.CountMembers(ctx, spaceID)
}
