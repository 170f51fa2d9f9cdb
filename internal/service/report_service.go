package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
	"github.com/appedme/konvo-backend/internal/validation"
)

// ReportStore описывает взаимодействие сервиса с хранилищем жалоб.
type ReportStore interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
	ListByReporter(ctx context.Context, reporterID uuid.UUID, limit, offset int) ([]models.Report, error)
	ListPending(ctx context.Context, limit, offset int) ([]models.Report, error)
	CountPending(ctx context.Context) (int, error)
}

// ReportUserReader проверяет существование пользователя-цели жалобы.
type ReportUserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// CreateReportInput параметры подачи жалобы. Должен быть заполнен ровно
// один из target-указателей.
type CreateReportInput struct {
	TargetPostID    *uuid.UUID
	TargetCommentID *uuid.UUID
	TargetUserID    *uuid.UUID
	TargetSpaceID   *uuid.UUID
	Reason          string
	Description     *string
}

// ReportService содержит бизнес-логику жалоб пользователей.
type ReportService struct {
	reports  ReportStore
	posts    VotePostReader
	comments ModerationCommentReader
	users    ReportUserReader
	spaces   PostSpaceReader
}

// NewReportService создаёт новый сервис жалоб.
func NewReportService(
	reports ReportStore,
	posts VotePostReader,
	comments ModerationCommentReader,
	users ReportUserReader,
	spaces PostSpaceReader,
) *ReportService {
	return &ReportService{reports: reports, posts: posts, comments: comments, users: users, spaces: spaces}
}

// CreateReport подаёт жалобу на ровно один объект: пост, комментарий,
// пользователя или сообщество.
func (s *ReportService) CreateReport(ctx context.Context, reporterID uuid.UUID, input CreateReportInput) (*models.Report, error) {
	targets := 0
	for _, t := range []*uuid.UUID{input.TargetPostID, input.TargetCommentID, input.TargetUserID, input.TargetSpaceID} {
		if t != nil {
			targets++
		}
	}
	if targets != 1 {
		return nil, apperror.New(apperror.ErrCodeValidation, "жалоба должна указывать ровно один объект")
	}

	if _, ok := models.ValidReportReasons[input.Reason]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестная категория жалобы")
	}
	if input.Description != nil {
		if err := validation.ValidateReason(*input.Description); err != nil {
			return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
		}
	}

	if err := s.checkTargetExists(ctx, reporterID, input); err != nil {
		return nil, err
	}

	report := &models.Report{
		ReporterID:    reporterID,
		TargetPostID:  input.TargetPostID,
		TargetCommentID: input.TargetCommentID,
		TargetUserID:  input.TargetUserID,
		TargetSpaceID: input.TargetSpaceID,
		Reason:        input.Reason,
		Description:   input.Description,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetReport возвращает жалобу. Доступно её автору и модераторам.
func (s *ReportService) GetReport(ctx context.Context, id, userID uuid.UUID, role string) (*models.Report, error) {
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}

	if report.ReporterID != userID && !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}
	return report, nil
}

// ListMyReports возвращает жалобы, поданные пользователем.
func (s *ReportService) ListMyReports(ctx context.Context, reporterID uuid.UUID, limit, offset int) ([]models.Report, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.reports.ListByReporter(ctx, reporterID, limit, offset)
}

// ListPending возвращает очередь нерассмотренных жалоб (старые первыми).
// Только для модераторов.
func (s *ReportService) ListPending(ctx context.Context, role string, limit, offset int) ([]models.Report, error) {
	if !models.IsModeratorRole(role) {
		return nil, apperror.ErrForbidden
	}
	limit, offset = normalizePagination(limit, offset)
	return s.reports.ListPending(ctx, limit, offset)
}

func (s *ReportService) checkTargetExists(ctx context.Context, reporterID uuid.UUID, input CreateReportInput) error {
	switch {
	case input.TargetPostID != nil:
		if _, err := s.posts.GetByID(ctx, *input.TargetPostID); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return apperror.ErrPostNotFound
			}
			return err
		}
	case input.TargetCommentID != nil:
		if _, err := s.comments.GetByID(ctx, *input.TargetCommentID); err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return apperror.New(apperror.ErrCodeNotFound, "комментарий не найден")
			}
			return err
		}
	case input.TargetUserID != nil:
		if *input.TargetUserID == reporterID {
			return apperror.New(apperror.ErrCodeValidation, "нельзя пожаловаться на самого себя")
		}
		if _, err := s.users.GetByID(ctx, *input.TargetUserID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return apperror.ErrUserNotFound
			}
			return err
		}
	case input.TargetSpaceID != nil:
		if _, err := s.spaces.GetByID(ctx, *input.TargetSpaceID); err != nil {
			if errors.Is(err, repository.ErrSpaceNotFound) {
				return apperror.ErrSpaceNotFound
			}
			return err
		}
	}
	return nil
}
