package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appedme/konvo-backend/internal/models"
	"github.com/appedme/konvo-backend/internal/pkg/apperror"
	"github.com/appedme/konvo-backend/internal/repository"
)

// mockReportStore хранит жалобы в памяти.
type mockReportStore struct {
	reports map[uuid.UUID]*models.Report
}

func newMockReportStore() *mockReportStore {
	return &mockReportStore{reports: make(map[uuid.UUID]*models.Report)}
}

func (m *mockReportStore) Create(ctx context.Context, report *models.Report) error {
	report.ID = uuid.New()
	report.Status = models.ReportStatusPending
	m.reports[report.ID] = report
	return nil
}

func (m *mockReportStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	if report, ok := m.reports[id]; ok {
		return report, nil
	}
	return nil, repository.ErrReportNotFound
}

func (m *mockReportStore) ListByReporter(ctx context.Context, reporterID uuid.UUID, limit, offset int) ([]models.Report, error) {
	var out []models.Report
	for _, r := range m.reports {
		if r.ReporterID == reporterID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReportStore) ListPending(ctx context.Context, limit, offset int) ([]models.Report, error) {
	var out []models.Report
	for _, r := range m.reports {
		if r.Status == models.ReportStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *mockReportStore) CountPending(ctx context.Context) (int, error) {
	count := 0
	for _, r := range m.reports {
		if r.Status == models.ReportStatusPending {
			count++
		}
	}
	return count, nil
}

// mockUserReader отдаёт фиксированных пользователей.
type mockUserReader struct {
	users map[uuid.UUID]*models.User
}

func (m *mockUserReader) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

// mockSpaceReader отдаёт фиксированное сообщество.
type mockSpaceReader struct {
	space *models.Space
}

func (m *mockSpaceReader) GetByID(ctx context.Context, id uuid.UUID) (*models.Space, error) {
	if m.space != nil && m.space.ID == id {
		return m.space, nil
	}
	return nil, repository.ErrSpaceNotFound
}

type reportFixture struct {
	service *ReportService
	store   *mockReportStore
	post    *models.Post
	comment *models.Comment
	space   *models.Space
	user    *models.User
}

func newReportFixture() *reportFixture {
	author := uuid.New()
	post := &models.Post{ID: uuid.New(), AuthorID: &author}
	comment := &models.Comment{ID: uuid.New(), PostID: post.ID, AuthorID: uuid.New()}
	space := &models.Space{ID: uuid.New(), Slug: "books", Name: "Книги"}
	user := &models.User{ID: uuid.New(), Username: "victim"}

	store := newMockReportStore()
	service := NewReportService(
		store,
		&mockPostReader{post: post},
		&mockCommentReader{comment: comment},
		&mockUserReader{users: map[uuid.UUID]*models.User{user.ID: user}},
		&mockSpaceReader{space: space},
	)
	return &reportFixture{service: service, store: store, post: post, comment: comment, space: space, user: user}
}

func TestReportService_CreateRequiresExactlyOneTarget(t *testing.T) {
	f := newReportFixture()
	reporter := uuid.New()
	ctx := context.Background()

	// Ни одной цели.
	_, err := f.service.CreateReport(ctx, reporter, CreateReportInput{Reason: models.ReportReasonSpam})
	assert.True(t, apperror.IsValidation(err))

	// Две цели сразу.
	_, err = f.service.CreateReport(ctx, reporter, CreateReportInput{
		TargetPostID: &f.post.ID,
		TargetUserID: &f.user.ID,
		Reason:       models.ReportReasonSpam,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_CreateUnknownReason(t *testing.T) {
	f := newReportFixture()

	_, err := f.service.CreateReport(context.Background(), uuid.New(), CreateReportInput{
		TargetPostID: &f.post.ID,
		Reason:       "boring",
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_CreateAgainstEachTarget(t *testing.T) {
	f := newReportFixture()
	reporter := uuid.New()
	ctx := context.Background()

	report, err := f.service.CreateReport(ctx, reporter, CreateReportInput{TargetPostID: &f.post.ID, Reason: models.ReportReasonSpam})
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	_, err = f.service.CreateReport(ctx, reporter, CreateReportInput{TargetCommentID: &f.comment.ID, Reason: models.ReportReasonHarassment})
	require.NoError(t, err)

	_, err = f.service.CreateReport(ctx, reporter, CreateReportInput{TargetUserID: &f.user.ID, Reason: models.ReportReasonOther})
	require.NoError(t, err)

	_, err = f.service.CreateReport(ctx, reporter, CreateReportInput{TargetSpaceID: &f.space.ID, Reason: models.ReportReasonIllegal})
	require.NoError(t, err)

	assert.Len(t, f.store.reports, 4)
}

func TestReportService_CreateTargetNotFound(t *testing.T) {
	f := newReportFixture()
	missing := uuid.New()

	_, err := f.service.CreateReport(context.Background(), uuid.New(), CreateReportInput{TargetPostID: &missing, Reason: models.ReportReasonSpam})
	assert.True(t, apperror.IsNotFound(err))
}

func TestReportService_CreateSelfReportFails(t *testing.T) {
	f := newReportFixture()

	_, err := f.service.CreateReport(context.Background(), f.user.ID, CreateReportInput{TargetUserID: &f.user.ID, Reason: models.ReportReasonSpam})
	assert.True(t, apperror.IsValidation(err))
}

func TestReportService_GetReportAccess(t *testing.T) {
	f := newReportFixture()
	reporter := uuid.New()
	ctx := context.Background()

	report, err := f.service.CreateReport(ctx, reporter, CreateReportInput{TargetPostID: &f.post.ID, Reason: models.ReportReasonSpam})
	require.NoError(t, err)

	// Автор жалобы видит её.
	_, err = f.service.GetReport(ctx, report.ID, reporter, models.RoleUser)
	require.NoError(t, err)

	// Посторонний пользователь — нет.
	_, err = f.service.GetReport(ctx, report.ID, uuid.New(), models.RoleUser)
	assert.True(t, apperror.IsForbidden(err))

	// Модератор видит любую жалобу.
	_, err = f.service.GetReport(ctx, report.ID, uuid.New(), models.RoleModerator)
	require.NoError(t, err)
}

func TestReportService_ListPendingModeratorOnly(t *testing.T) {
	f := newReportFixture()

	_, err := f.service.ListPending(context.Background(), models.RoleUser, 20, 0)
	assert.True(t, apperror.IsForbidden(err))

	reports, err := f.service.ListPending(context.Background(), models.RoleAdmin, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, reports)
}
