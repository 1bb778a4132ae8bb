package repository

import (
	"context"
	"fmt"
	"time"

	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepo stores the per-user engagement rows. Every write is a single
// statement keyed on the (user, target) unique index, so concurrent
// requests from one user settle on one row.
type LedgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) WithTx(tx *gorm.DB) *LedgerRepo {
	return &LedgerRepo{db: tx}
}

// UpsertRating inserts the rating or overwrites the score of the existing one.
func (r *LedgerRepo) UpsertRating(ctx context.Context, userID string, movieID int64, score int) error {
	rating := &models.Rating{UserID: userID, MovieID: movieID, Score: score}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(rating).Error
	if err != nil {
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

// AddLike reports whether a new row was written; an existing like is left alone.
func (r *LedgerRepo) AddLike(ctx context.Context, userID string, movieID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
			DoNothing: true,
		}).
		Create(&models.Like{UserID: userID, MovieID: movieID})
	if res.Error != nil {
		return false, fmt.Errorf("add like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// RemoveLike returns the number of rows removed, 0 when there was no like.
func (r *LedgerRepo) RemoveLike(ctx context.Context, userID string, movieID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.Like{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove like: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *LedgerRepo) AddCommentLike(ctx context.Context, userID string, commentID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "comment_id"}},
			DoNothing: true,
		}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID})
	if res.Error != nil {
		return false, fmt.Errorf("add comment like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *LedgerRepo) RemoveCommentLike(ctx context.Context, userID string, commentID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove comment like: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// UpsertStatus sets the watch status and refreshes its timestamp.
func (r *LedgerRepo) UpsertStatus(ctx context.Context, userID string, movieID int64, status models.WatchStatus, at time.Time) (*models.UserMovieStatus, error) {
	row := &models.UserMovieStatus{UserID: userID, MovieID: movieID, Status: status, UpdatedAt: at}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(row).Error
	if err != nil {
		return nil, fmt.Errorf("upsert status: %w", err)
	}
	return row, nil
}

func (r *LedgerRepo) RemoveStatus(ctx context.Context, userID string, movieID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Delete(&models.UserMovieStatus{})
	if res.Error != nil {
		return 0, fmt.Errorf("remove status: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// GetStatus returns nil without error when the requester has no status for the movie.
func (r *LedgerRepo) GetStatus(ctx context.Context, userID string, movieID int64) (*models.UserMovieStatus, error) {
	var rows []models.UserMovieStatus
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		Limit(1).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("get status: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

func (r *LedgerRepo) ListStatuses(ctx context.Context, userID string) ([]models.UserMovieStatus, error) {
	var rows []models.UserMovieStatus
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	return rows, nil
}

func (r *LedgerRepo) GetRating(ctx context.Context, userID string, movieID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND movie_id = ?", userID, movieID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
