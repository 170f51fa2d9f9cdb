package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// mockModerationStore запоминает применённые решения.
type mockModerationStore struct {
	reports       map[uuid.UUID]*models.Report
	verifications map[uuid.UUID]*models.VerificationRequest
	actions       []models.ModerationAction
	bannedUsers   map[uuid.UUID]string
	lastEffects   repository.ReportDecisionEffects
}

func newMockModerationStore() *mockModerationStore {
	return &mockModerationStore{
		reports:       make(map[uuid.UUID]*models.Report),
		verifications: make(map[uuid.UUID]*models.VerificationRequest),
		bannedUsers:   make(map[uuid.UUID]string),
	}
}

func (m *mockModerationStore) DecideReport(ctx context.Context, reportID, moderatorID uuid.UUID, newStatus string, effects repository.ReportDecisionEffects, action *models.ModerationAction) error {
	report, ok := m.reports[reportID]
	if !ok {
		return repository.ErrReportNotFound
	}
	if report.Status != models.ReportStatusPending {
		return repository.ErrAlreadyDecided
	}
	now := time.Now()
	report.Status = newStatus
	report.ReviewedBy = &moderatorID
	report.ReviewedAt = &now
	if effects.BanUserID != nil {
		m.bannedUsers[*effects.BanUserID] = *effects.BanReason
	}
	if effects.DeleteCommentID != nil {
		// Удаление комментария обнуляет ссылки жалоб, сами жалобы сохраняются.
		for _, r := range m.reports {
			if r.TargetCommentID != nil && *r.TargetCommentID == *effects.DeleteCommentID {
				r.TargetCommentID = nil
			}
		}
	}
	m.lastEffects = effects
	m.actions = append(m.actions, *action)
	return nil
}

func (m *mockModerationStore) DecideVerification(ctx context.Context, requestID, moderatorID uuid.UUID, newStatus string, notes *string, effects repository.VerificationDecisionEffects, action *models.ModerationAction) error {
	request, ok := m.verifications[requestID]
	if !ok {
		return repository.ErrVerificationNotFound
	}
	if request.Status != models.VerificationStatusPending {
		return repository.ErrAlreadyDecided
	}
	now := time.Now()
	request.Status = newStatus
	request.ReviewedBy = &moderatorID
	request.ReviewedAt = &now
	request.ReviewNotes = notes
	m.actions = append(m.actions, *action)
	return nil
}

func (m *mockModerationStore) BanUser(ctx context.Context, userID, moderatorID uuid.UUID, reason string) error {
	m.bannedUsers[userID] = reason
	return nil
}

func (m *mockModerationStore) ListActions(ctx context.Context, limit, offset int) ([]models.ModerationAction, error) {
	return m.actions, nil
}

func (m *mockModerationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if report, ok := m.reports[id]; ok {
		return report, nil
	}
	return nil, repository.ErrReportNotFound
}

// mockVerificationReader читает запросы из того же стора.
type mockVerificationReader struct {
	store *mockModerationStore
}

func (m *mockVerificationReader) GetByID(ctx context.Context, id uuid.UUID) (*models.VerificationRequest, error) {
	if request, ok := m.store.verifications[id]; ok {
		return request, nil
	}
	return nil, repository.ErrVerificationNotFound
}

// mockCommentReader отдаёт фиксированный комментарий.
type mockCommentReader struct {
	comment *models.Comment
}

func (m *mockCommentReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	if m.comment != nil && m.comment.ID == id {
		return m.comment, nil
	}
	return nil, repository.ErrCommentNotFound
}

type moderationFixture struct {
	service          *ModerationService
	store            *mockModerationStore
	notificationRepo *mockNotificationRepository
	post             *models.Post
	comment          *models.Comment
}

func newModerationFixture() *moderationFixture {
	author := uuid.New()
	post := &models.Post{ID: uuid.New(), AuthorID: &author, Status: models.PostStatusPublished}
	comment := &models.Comment{ID: uuid.New(), PostID: post.ID, AuthorID: uuid.New()}

	store := newMockModerationStore()
	notificationRepo := newMockNotificationRepository()
	notifications := NewNotificationService(notificationRepo, time.Minute)

	service := NewModerationService(
		store,
		store,
		&mockVerificationReader{store: store},
		&mockPostReader{post: post},
		&mockCommentReader{comment: comment},
		notifications,
	)
	return &moderationFixture{service: service, store: store, notificationRepo: notificationRepo, post: post, comment: comment}
}

func (f *moderationFixture) addPendingReport(mutate func(*models.Report)) *models.Report {
	report := &models.Report{
		ID:         uuid.New(),
		ReporterID: uuid.New(),
		Reason:     models.ReportReasonSpam,
		Status:     models.ReportStatusPending,
	}
	if mutate != nil {
		mutate(report)
	}
	f.store.reports[report.ID] = report
	return report
}

func TestModerationService_DecideReportRequiresModerator(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleUser, report.ID, ReportDecisionInput{Decision: models.ReportDecisionResolve})
	assert.True(t, apperror.IsForbidden(err))
	assert.Equal(t, models.ReportStatusPending, report.Status)
}

func TestModerationService_DecideReportUnknownDecision(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(nil)

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: "escalate"})
	assert.True(t, apperror.IsValidation(err))
}

func TestModerationService_DecideReportResolveAndDismiss(t *testing.T) {
	f := newModerationFixture()
	moderator := uuid.New()
	ctx := context.Background()

	resolved := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	decided, err := f.service.DecideReport(ctx, moderator, models.RoleModerator, resolved.ID, ReportDecisionInput{Decision: models.ReportDecisionResolve})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, decided.Status)
	assert.Equal(t, &moderator, decided.ReviewedBy)

	dismissed := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	decided, err = f.service.DecideReport(ctx, moderator, models.RoleAdmin, dismissed.ID, ReportDecisionInput{Decision: models.ReportDecisionDismiss})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusDismissed, decided.Status)

	// Аудит пишется по действию на каждое решение.
	require.Len(t, f.store.actions, 2)
	assert.Equal(t, "report_resolve", f.store.actions[0].Action)
	assert.Equal(t, "report_dismiss", f.store.actions[1].Action)
}

func TestModerationService_DecideReportAlreadyDecided(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) {
		r.TargetPostID = &f.post.ID
		r.Status = models.ReportStatusResolved
	})

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: models.ReportDecisionDismiss})
	assert.True(t, apperror.IsAlreadyDecided(err))
}

func TestModerationService_DeleteContentRejectsPost(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: models.ReportDecisionDeleteContent})
	require.NoError(t, err)
	assert.Equal(t, &f.post.ID, f.store.lastEffects.RejectPostID)
	assert.Nil(t, f.store.lastEffects.DeleteCommentID)
	assert.Nil(t, f.store.lastEffects.BanUserID)
}

func TestModerationService_DeleteContentDeletesComment(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetCommentID = &f.comment.ID })

	decided, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: models.ReportDecisionDeleteContent})
	require.NoError(t, err)
	assert.Equal(t, &f.comment.ID, f.store.lastEffects.DeleteCommentID)

	// Жалоба переживает удаление комментария: остаётся в решённом статусе
	// с обнулённой ссылкой, а запись журнала сохраняет идентификатор.
	require.NotNil(t, decided)
	assert.Equal(t, models.ReportStatusResolved, decided.Status)
	assert.Nil(t, decided.TargetCommentID)
	require.Len(t, f.store.actions, 1)
	assert.Equal(t, "report_delete_content", f.store.actions[0].Action)
	require.NotNil(t, f.store.actions[0].TargetCommentID)
	assert.Equal(t, f.comment.ID, *f.store.actions[0].TargetCommentID)
}

func TestModerationService_DeleteContentOnUserReportFails(t *testing.T) {
	f := newModerationFixture()
	target := uuid.New()
	report := f.addPendingReport(func(r *models.Report) { r.TargetUserID = &target })

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: models.ReportDecisionDeleteContent})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, models.ReportStatusPending, report.Status)
}

func TestModerationService_BanUserDecisionRequiresReason(t *testing.T) {
	f := newModerationFixture()
	target := uuid.New()
	report := f.addPendingReport(func(r *models.Report) { r.TargetUserID = &target })

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{Decision: models.ReportDecisionBanUser})
	assert.True(t, apperror.IsValidation(err))
}

func TestModerationService_BanUserDecisionBansPostAuthor(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	reason := "систематический спам"

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{
		Decision: models.ReportDecisionBanUser,
		Reason:   &reason,
	})
	require.NoError(t, err)
	assert.Equal(t, reason, f.store.bannedUsers[*f.post.AuthorID])
	// Аудит указывает на забаненного пользователя.
	require.Len(t, f.store.actions, 1)
	assert.Equal(t, f.post.AuthorID, f.store.actions[0].TargetUserID)
}

func TestModerationService_BanUserFlagOnlyWithDeleteContent(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	reason := "причина"

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{
		Decision: models.ReportDecisionResolve,
		Reason:   &reason,
		BanUser:  true,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestModerationService_DeleteContentWithBan(t *testing.T) {
	f := newModerationFixture()
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	reason := "запрещённый контент"

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{
		Decision: models.ReportDecisionDeleteContent,
		Reason:   &reason,
		BanUser:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, &f.post.ID, f.store.lastEffects.RejectPostID)
	assert.Equal(t, f.post.AuthorID, f.store.lastEffects.BanUserID)
}

func TestModerationService_BanAnonymousPostAuthorFails(t *testing.T) {
	f := newModerationFixture()
	f.post.AuthorID = nil
	report := f.addPendingReport(func(r *models.Report) { r.TargetPostID = &f.post.ID })
	reason := "причина"

	_, err := f.service.DecideReport(context.Background(), uuid.New(), models.RoleModerator, report.ID, ReportDecisionInput{
		Decision: models.ReportDecisionBanUser,
		Reason:   &reason,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestModerationService_DecideVerificationApprove(t *testing.T) {
	f := newModerationFixture()
	requester := uuid.New()
	subject := uuid.New()
	request := &models.VerificationRequest{
		ID:          uuid.New(),
		UserID:      &subject,
		RequestedBy: requester,
		Status:      models.VerificationStatusPending,
	}
	f.store.verifications[request.ID] = request

	decided, err := f.service.DecideVerification(context.Background(), uuid.New(), models.RoleModerator, request.ID, VerificationDecisionInput{Decision: models.VerificationDecisionApprove})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusApproved, decided.Status)

	// Заявитель уведомляется об одобрении.
	require.Len(t, f.notificationRepo.notifications, 1)
	for _, n := range f.notificationRepo.notifications {
		assert.Equal(t, requester, n.UserID)
		assert.Equal(t, models.NotificationTypeVerificationApproved, n.Type)
	}
}

func TestModerationService_DecideVerificationRejectRequiresNotes(t *testing.T) {
	f := newModerationFixture()
	subject := uuid.New()
	request := &models.VerificationRequest{
		ID:          uuid.New(),
		UserID:      &subject,
		RequestedBy: uuid.New(),
		Status:      models.VerificationStatusPending,
	}
	f.store.verifications[request.ID] = request

	_, err := f.service.DecideVerification(context.Background(), uuid.New(), models.RoleModerator, request.ID, VerificationDecisionInput{Decision: models.VerificationDecisionReject})
	assert.True(t, apperror.IsValidation(err))
	assert.Equal(t, models.VerificationStatusPending, request.Status)

	empty := "   "
	_, err = f.service.DecideVerification(context.Background(), uuid.New(), models.RoleModerator, request.ID, VerificationDecisionInput{Decision: models.VerificationDecisionReject, Notes: &empty})
	assert.True(t, apperror.IsValidation(err))
}

func TestModerationService_DecideVerificationReject(t *testing.T) {
	f := newModerationFixture()
	subject := uuid.New()
	request := &models.VerificationRequest{
		ID:          uuid.New(),
		UserID:      &subject,
		RequestedBy: uuid.New(),
		Status:      models.VerificationStatusPending,
	}
	f.store.verifications[request.ID] = request
	notes := "недостаточно подтверждений"

	decided, err := f.service.DecideVerification(context.Background(), uuid.New(), models.RoleModerator, request.ID, VerificationDecisionInput{Decision: models.VerificationDecisionReject, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusRejected, decided.Status)
	assert.Equal(t, &notes, decided.ReviewNotes)
	assert.Empty(t, f.notificationRepo.notifications)
}

func TestModerationService_DirectBanValidations(t *testing.T) {
	f := newModerationFixture()
	moderator := uuid.New()
	ctx := context.Background()

	err := f.service.BanUser(ctx, moderator, models.RoleUser, uuid.New(), "причина")
	assert.True(t, apperror.IsForbidden(err))

	err = f.service.BanUser(ctx, moderator, models.RoleModerator, uuid.New(), "  ")
	assert.True(t, apperror.IsValidation(err))

	err = f.service.BanUser(ctx, moderator, models.RoleModerator, moderator, "причина")
	assert.True(t, apperror.IsValidation(err))

	target := uuid.New()
	err = f.service.BanUser(ctx, moderator, models.RoleModerator, target, "спам")
	require.NoError(t, err)
	assert.Equal(t, "спам", f.store.bannedUsers[target])
}

func TestModerationService_ListActionsModeratorOnly(t *testing.T) {
	f := newModerationFixture()

	_, err := f.service.ListActions(context.Background(), models.RoleUser, 20, 0)
	assert.True(t, apperror.IsForbidden(err))

	actions, err := f.service.ListActions(context.Background(), models.RoleModerator, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, actions)
}
