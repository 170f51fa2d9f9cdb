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
)

// ModerationStore описывает атомарные операции решений модерации.
type ModerationStore interface {
	DecideReport(ctx context.Context, reportID, moderatorID uuid.UUID, newStatus string, effects repository.ReportDecisionEffects, action *models.ModerationAction) error
	DecideVerification(ctx context.Context, requestID, moderatorID uuid.UUID, newStatus string, notes *string, effects repository.VerificationDecisionEffects, action *models.ModerationAction) error
	BanUser(ctx context.Context, userID, moderatorID uuid.UUID, reason string) error
	ListActions(ctx context.Context, limit, offset int) ([]models.ModerationAction, error)
}

// ModerationReportReader читает жалобы для сервиса модерации.
type ModerationReportReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error)
}

// ModerationVerificationReader читает запросы на верификацию.
type ModerationVerificationReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error)
}

// ModerationCommentReader читает комментарии для определения автора.
type ModerationCommentReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
}

// ReportDecisionInput параметры решения по жалобе.
// BanUser дополняет delete_content баном автора в той же атомарной единице.
type ReportDecisionInput struct {
	Decision string
	Reason   *string
	BanUser  bool
}

// VerificationDecisionInput параметры решения по запросу на верификацию.
type VerificationDecisionInput struct {
	Decision string
	Notes    *string
}

// ModerationService содержит бизнес-логику принятия решений модерации.
// Каждое решение — одна атомарная единица: смена статуса, побочные
// эффекты и запись аудита либо фиксируются вместе, либо не фиксируются.
type ModerationService struct {
	store         ModerationStore
	reports       ModerationReportReader
	verifications ModerationVerificationReader
	posts         VotePostReader
	comments      ModerationCommentReader
	notifications *NotificationService
}

// NewModerationService создаёт новый сервис модерации.
func NewModerationService(
	store ModerationStore,
	reports ModerationReportReader,
	verifications ModerationVerificationReader,
	posts VotePostReader,
	comments ModerationCommentReader,
	notifications *NotificationService,
) *ModerationService {
	return &ModerationService{
		store:         store,
		reports:       reports,
		verifications: verifications,
		posts:         posts,
		comments:      comments,
		notifications: notifications,
	}
}

// DecideReport принимает решение модератора по жалобе.
//
// Терминальные жалобы не переводятся повторно: попытка возвращает
// ErrAlreadyDecided. Решения delete_content и ban_user применяют
// побочные эффекты в одной транзакции со сменой статуса; неприменимый
// эффект проваливает решение целиком.
func (s *ModerationService) DecideReport(ctx context.Context, moderatorID uuid.UUID, moderatorRole string, reportID uuid.UUID, input ReportDecisionInput) (*models.Report, error) {
	if !models.IsModeratorRole(moderatorRole) {
		return nil, apperror.ErrForbidden
	}
	if _, ok := models.ValidReportDecisions[input.Decision]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестное решение по жалобе")
	}
	if input.BanUser && input.Decision != models.ReportDecisionDeleteContent {
		return nil, apperror.New(apperror.ErrCodeValidation, "флаг ban_user допустим только вместе с решением delete_content")
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, apperror.ErrReportNotFound
		}
		return nil, err
	}
	if report.Status != models.ReportStatusPending {
		return nil, apperror.ErrAlreadyDecided
	}

	newStatus := models.ReportStatusResolved
	if input.Decision == models.ReportDecisionDismiss {
		newStatus = models.ReportStatusDismissed
	}

	effects := repository.ReportDecisionEffects{}
	withBan := input.Decision == models.ReportDecisionBanUser || input.BanUser

	if input.Decision == models.ReportDecisionDeleteContent {
		switch {
		case report.TargetPostID != nil:
			effects.RejectPostID = report.TargetPostID
		case report.TargetCommentID != nil:
			effects.DeleteCommentID = report.TargetCommentID
		default:
			return nil, apperror.New(apperror.ErrCodeValidation, "решение delete_content применимо только к жалобам на пост или комментарий")
		}
	}

	if withBan {
		if input.Reason == nil || strings.TrimSpace(*input.Reason) == "" {
			return nil, apperror.New(apperror.ErrCodeValidation, "для бана требуется указать причину")
		}
		bannedID, err := s.resolveBannedUser(ctx, report)
		if err != nil {
			return nil, err
		}
		effects.BanUserID = bannedID
		effects.BanReason = input.Reason
	}

	action := &models.ModerationAction{
		ModeratorID:     moderatorID,
		Action:          "report_" + input.Decision,
		Reason:          input.Reason,
		ReportID:        &report.ID,
		TargetUserID:    report.TargetUserID,
		TargetSpaceID:   report.TargetSpaceID,
		TargetPostID:    report.TargetPostID,
		TargetCommentID: report.TargetCommentID,
	}
	if effects.BanUserID != nil {
		action.TargetUserID = effects.BanUserID
	}

	if err := s.store.DecideReport(ctx, reportID, moderatorID, newStatus, effects, action); err != nil {
		return nil, s.mapDecisionErr(err)
	}

	decided, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// DecideVerification принимает решение по запросу на верификацию.
// Отклонение требует непустой причины; запрос при этом остаётся pending.
func (s *ModerationService) DecideVerification(ctx context.Context, moderatorID uuid.UUID, moderatorRole string, requestID uuid.UUID, input VerificationDecisionInput) (*models.VerificationRequest, error) {
	if !models.IsModeratorRole(moderatorRole) {
		return nil, apperror.ErrForbidden
	}
	if _, ok := models.ValidVerificationDecisions[input.Decision]; !ok {
		return nil, apperror.New(apperror.ErrCodeValidation, "неизвестное решение по запросу на верификацию")
	}
	if input.Decision == models.VerificationDecisionReject &&
		(input.Notes == nil || strings.TrimSpace(*input.Notes) == "") {
		return nil, apperror.New(apperror.ErrCodeValidation, "для отклонения требуется указать причину")
	}

	request, err := s.verifications.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, repository.ErrVerificationNotFound) {
			return nil, apperror.ErrVerificationNotFound
		}
		return nil, err
	}
	if request.Status != models.VerificationStatusPending {
		return nil, apperror.ErrAlreadyDecided
	}

	newStatus := models.VerificationStatusApproved
	effects := repository.VerificationDecisionEffects{}
	if input.Decision == models.VerificationDecisionApprove {
		effects.VerifyUserID = request.UserID
		effects.VerifySpaceID = request.SpaceID
	} else {
		newStatus = models.VerificationStatusRejected
	}

	action := &models.ModerationAction{
		ModeratorID:    moderatorID,
		Action:         "verification_" + input.Decision,
		Reason:         input.Notes,
		VerificationID: &request.ID,
		TargetUserID:   request.UserID,
		TargetSpaceID:  request.SpaceID,
	}

	if err := s.store.DecideVerification(ctx, requestID, moderatorID, newStatus, input.Notes, effects, action); err != nil {
		return nil, s.mapDecisionErr(err)
	}

	if input.Decision == models.VerificationDecisionApprove {
		refs := models.NotificationRefs{SpaceID: request.SpaceID}
		if _, err := s.notifications.Notify(ctx, request.RequestedBy, moderatorID, models.NotificationTypeVerificationApproved, refs); err != nil {
			logger.Log.WithField("request_id", requestID).WithError(err).Warn("moderation service: не удалось создать уведомление о верификации")
		}
	}

	decided, err := s.verifications.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// BanUser банит пользователя напрямую, минуя жалобу. Только для админки.
func (s *ModerationService) BanUser(ctx context.Context, moderatorID uuid.UUID, moderatorRole string, userID uuid.UUID, reason string) error {
	if !models.IsModeratorRole(moderatorRole) {
		return apperror.ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return apperror.New(apperror.ErrCodeValidation, "для бана требуется указать причину")
	}
	if userID == moderatorID {
		return apperror.New(apperror.ErrCodeValidation, "нельзя забанить самого себя")
	}

	if err := s.store.BanUser(ctx, userID, moderatorID, reason); err != nil {
		return s.mapDecisionErr(err)
	}
	return nil
}

// ListActions возвращает журнал аудита. Только для модераторов.
func (s *ModerationService) ListActions(ctx context.Context, moderatorRole string, limit, offset int) ([]models.ModerationAction, error) {
	if !models.IsModeratorRole(moderatorRole) {
		return nil, apperror.ErrForbidden
	}
	limit, offset = normalizePagination(limit, offset)
	return s.store.ListActions(ctx, limit, offset)
}

// resolveBannedUser определяет пользователя, которого касается бан:
// цель жалобы либо автор обжалуемого контента.
func (s *ModerationService) resolveBannedUser(ctx context.Context, report *models.Report) (*uuid.UUID, error) {
	switch {
	case report.TargetUserID != nil:
		return report.TargetUserID, nil
	case report.TargetPostID != nil:
		post, err := s.posts.GetByID(ctx, *report.TargetPostID)
		if err != nil {
			return nil, s.mapDecisionErr(err)
		}
		if post.AuthorID == nil {
			return nil, apperror.New(apperror.ErrCodeValidation, "у анонимного поста нет автора для бана")
		}
		return post.AuthorID, nil
	case report.TargetCommentID != nil:
		comment, err := s.comments.GetByID(ctx, *report.TargetCommentID)
		if err != nil {
			return nil, s.mapDecisionErr(err)
		}
		authorID := comment.AuthorID
		return &authorID, nil
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "жалоба на сообщество не допускает бан пользователя")
	}
}

// mapDecisionErr переводит ошибки слоя хранения в ошибки приложения.
func (s *ModerationService) mapDecisionErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrAlreadyDecided):
		return apperror.ErrAlreadyDecided
	case errors.Is(err, repository.ErrReportNotFound):
		return apperror.ErrReportNotFound
	case errors.Is(err, repository.ErrVerificationNotFound):
		return apperror.ErrVerificationNotFound
	case errors.Is(err, repository.ErrPostNotFound):
		return apperror.ErrPostNotFound
	case errors.Is(err, repository.ErrCommentNotFound):
		return apperror.New(apperror.ErrCodeNotFound, "комментарий не найден")
	case errors.Is(err, repository.ErrUserNotFound):
		return apperror.ErrUserNotFound
	case errors.Is(err, repository.ErrSpaceNotFound):
		return apperror.ErrSpaceNotFound
	default:
		return err
	}
}
