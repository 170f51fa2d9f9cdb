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

// VerificationStore описывает взаимодействие сервиса с хранилищем
// запросов на верификацию.
type VerificationStore interface {
	Create(ctx context.Context, request *models.VerificationRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.VerificationRequest, error)
	ListByRequester(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.VerificationRequest, error)
	CountPending(ctx context.Context) (int, error)
}

// VerificationService содержит бизнес-логику запросов на верификацию.
type VerificationService struct {
	requests VerificationStore
	spaces   PostSpaceReader
}

// NewVerificationService создаёт новый сервис верификации.
func NewVerificationService(requests VerificationStore, spaces PostSpaceReader) *VerificationService {
	return &VerificationService{requests: requests, spaces: spaces}
}

// RequestUserVerification подаёт запрос на верификацию собственного
// аккаунта. На один аккаунт допускается один pending-запрос.
func (s *VerificationService) RequestUserVerification(ctx context.Context, userID uuid.UUID, justification string) (*models.VerificationRequest, error) {
	justification = strings.TrimSpace(justification)
	if err := validation.ValidateJustification(justification); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	request := &models.VerificationRequest{
		UserID:        &userID,
		RequestedBy:   userID,
		Justification: justification,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrVerificationPendingExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "запрос на верификацию уже находится на рассмотрении")
		}
		return nil, err
	}
	return request, nil
}

// RequestSpaceVerification подаёт запрос на верификацию сообщества.
// Доступно только создателю сообщества.
func (s *VerificationService) RequestSpaceVerification(ctx context.Context, userID, spaceID uuid.UUID, justification string) (*models.VerificationRequest, error) {
	justification = strings.TrimSpace(justification)
	if err := validation.ValidateJustification(justification); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}

	space, err := s.spaces.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, repository.ErrSpaceNotFound) {
			return nil, apperror.ErrSpaceNotFound
		}
		return nil, err
	}
	if space.CreatedBy != userID {
		return nil, apperror.ErrForbidden
	}

	request := &models.VerificationRequest{
		SpaceID:       &spaceID,
		RequestedBy:   userID,
		Justification: justification,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrVerificationPendingExists) {
			return nil, apperror.New(apperror.ErrCodeConflict, "запрос на верификацию уже находится на рассмотрении")
		}
		return nil, err
	}
	return request, nil
}

// GetRequest возвращает запрос. Доступно его автору и модераторам.
func (s *VerificationService) GetRequest(ctx context.Context, id, userID uuid.UUID, role string) (*models.VerificationRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return nil, apperror.ErrVerificationNotFound
		}
		return nil, err
	}

	if request.RequestedBy != userID && !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}
	return request, nil
}

// ListMyRequests возвращает запросы, поданные пользователем.
func (s *VerificationService) ListMyRequests(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.VerificationRequest, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.requests.ListByRequester(ctx, userID, limit, offset)
}

// ListPending возвращает очередь нерассмотренных запросов (старые
// первыми). Только для модераторов.
func (s *VerificationService) ListPending(ctx context.Context, role string, limit, offset int) ([]models.VerificationRequest, error) {
	if !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}
	limit, offset = normalizePagination(limit, offset)
	return s.requests.ListPending(ctx, limit, offset)
}
