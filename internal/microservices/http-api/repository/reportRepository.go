package repository

import (
	"context"
	"fmt"
	"time"

	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

const movieRatingReportLimit = 50

type LikedMovieRow struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type MovieStatusRow struct {
	MovieID   int64              `json:"movieId"`
	Title     string             `json:"title"`
	Status    models.WatchStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

type UserMetrics struct {
	LikedMovies    int64 `json:"likedMovies"`
	WatchedMovies  int64 `json:"watchedMovies"`
	ProposalsCount int64 `json:"proposalsCount"`
}

type MovieRatingRow struct {
	Name        string  `json:"name"`
	AvgScore    float64 `json:"avgScore"`
	RatingCount int64   `json:"ratingCount"`
}

type DashboardMetrics struct {
	TotalMovies  int64 `json:"totalMovies"`
	NewProposals int64 `json:"newProposals"`
	TotalUsers   int64 `json:"totalUsers"`
	TotalRatings int64 `json:"totalRatings"`
}

// ReportRepo runs the read-only aggregate queries behind the report pages.
type ReportRepo struct {
	db *gorm.DB
}

func NewReportRepo(db *gorm.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

func (r *ReportRepo) LikedMovies(ctx context.Context, userID string) ([]LikedMovieRow, error) {
	rows := []LikedMovieRow{}
	err := r.db.WithContext(ctx).
		Table("movies").
		Select("movies.id, movies.title").
		Joins("JOIN likes l ON l.movie_id = movies.id AND l.user_id = ?", userID).
		Order("movies.title ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("report liked movies: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) MovieStatuses(ctx context.Context, userID string) ([]MovieStatusRow, error) {
	rows := []MovieStatusRow{}
	err := r.db.WithContext(ctx).
		Table("user_movie_statuses s").
		Select("s.movie_id, m.title, s.status, s.updated_at").
		Joins("JOIN movies m ON m.id = s.movie_id").
		Where("s.user_id = ?", userID).
		Order("s.updated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("report movie statuses: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) UserMetrics(ctx context.Context, userID string) (*UserMetrics, error) {
	var m UserMetrics
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Like{}).Where("user_id = ?", userID).Count(&m.LikedMovies).Error; err != nil {
		return nil, fmt.Errorf("count liked movies: %w", err)
	}
	if err := db.Model(&models.UserMovieStatus{}).
		Where("user_id = ? AND status = ?", userID, models.WatchStatusWatched).
		Count(&m.WatchedMovies).Error; err != nil {
		return nil, fmt.Errorf("count watched movies: %w", err)
	}
	if err := db.Model(&models.MovieProposal{}).Where("user_id = ?", userID).Count(&m.ProposalsCount).Error; err != nil {
		return nil, fmt.Errorf("count proposals: %w", err)
	}
	return &m, nil
}

// MovieRatings lists rated movies by rating count, most rated first.
func (r *ReportRepo) MovieRatings(ctx context.Context) ([]MovieRatingRow, error) {
	rows := []MovieRatingRow{}
	err := r.db.WithContext(ctx).
		Table("ratings r").
		Select("m.title AS name, AVG(r.score) AS avg_score, COUNT(*) AS rating_count").
		Joins("JOIN movies m ON m.id = r.movie_id").
		Group("m.id, m.title").
		Order("rating_count DESC, m.title ASC").
		Limit(movieRatingReportLimit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("report movie ratings: %w", err)
	}
	return rows, nil
}

func (r *ReportRepo) Dashboard(ctx context.Context) (*DashboardMetrics, error) {
	var m DashboardMetrics
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Movie{}).Count(&m.TotalMovies).Error; err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}
	if err := db.Model(&models.MovieProposal{}).Where("status = ?", models.ProposalPending).Count(&m.NewProposals).Error; err != nil {
		return nil, fmt.Errorf("count pending proposals: %w", err)
	}
	if err := db.Model(&models.User{}).Count(&m.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := db.Model(&models.Rating{}).Count(&m.TotalRatings).Error; err != nil {
		return nil, fmt.Errorf("count ratings: %w", err)
	}
	return &m, nil
}
