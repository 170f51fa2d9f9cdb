package repository

import (
	"context"
)

// StatsCounters собирает агрегаты из разных репозиториев для сводки
// аналитики.
type StatsCounters struct {
	users         *UserRepository
	posts         *PostRepository
	reports       *ReportRepository
	verifications *VerificationRepository
}

// NewStatsCounters создаёт агрегатор счётчиков.
func NewStatsCounters(users *UserRepository, posts *PostRepository, reports *ReportRepository, verifications *VerificationRepository) *StatsCounters {
	return &StatsCounters{users: users, posts: posts, reports: reports, verifications: verifications}
}

func (s *StatsCounters) CountUsers(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}

func (s *StatsCounters) CountPosts(ctx context.Context, status string) (int, error) {
	return s.posts.Count(ctx, status)
}

func (s *StatsCounters) CountPendingReports(ctx context.Context) (int, error) {
	return s.reports.CountPending(ctx)
}

func (s *StatsCounters) CountPendingVerifications(ctx context.Context) (int, error) {
	return s.verifications.CountPending(ctx)
}
