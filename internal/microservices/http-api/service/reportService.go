package service

import (
	"context"

	"filmhub/internal/microservices/http-api/repository"
)

// ReportService serves the per-user and admin aggregate pages.
type ReportService interface {
	LikedMovies(ctx context.Context, req Requester) ([]repository.LikedMovieRow, error)
	MovieStatuses(ctx context.Context, req Requester) ([]repository.MovieStatusRow, error)
	UserMetrics(ctx context.Context, req Requester) (*repository.UserMetrics, error)

	MovieRatings(ctx context.Context) ([]repository.MovieRatingRow, error)
	Dashboard(ctx context.Context) (*repository.DashboardMetrics, error)
	ProposalsByStatus(ctx context.Context) (map[string]int64, error)
}

type reportService struct {
	reports   *repository.ReportRepo
	proposals *repository.ProposalRepo
}

func NewReportService(reports *repository.ReportRepo, proposals *repository.ProposalRepo) ReportService {
	return &reportService{reports: reports, proposals: proposals}
}

func (s *reportService) LikedMovies(ctx context.Context, req Requester) ([]repository.LikedMovieRow, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	rows, err := s.reports.LikedMovies(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.LikedMovieRow{}
	}
	return rows, nil
}

func (s *reportService) MovieStatuses(ctx context.Context, req Requester) ([]repository.MovieStatusRow, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	rows, err := s.reports.MovieStatuses(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.MovieStatusRow{}
	}
	return rows, nil
}

func (s *reportService) UserMetrics(ctx context.Context, req Requester) (*repository.UserMetrics, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	return s.reports.UserMetrics(ctx, req.UserID)
}

func (s *reportService) MovieRatings(ctx context.Context) ([]repository.MovieRatingRow, error) {
	rows, err := s.reports.MovieRatings(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []repository.MovieRatingRow{}
	}
	return rows, nil
}

func (s *reportService) Dashboard(ctx context.Context) (*repository.DashboardMetrics, error) {
	return s.reports.Dashboard(ctx)
}

func (s *reportService) ProposalsByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.proposals.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(counts))
	for status, n := range counts {
		out[string(status)] = n
	}
	return out, nil
}
