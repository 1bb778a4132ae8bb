package repository

import (
	"context"
	"fmt"
	"time"

	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// CommentView is a comment joined with its author and like aggregates.
type CommentView struct {
	ID         int64
	Text       string
	CreatedAt  time.Time
	UserID     string
	UserName   string
	LikesCount int64
	LikedByMe  bool
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	Exists(ctx context.Context, id int64) (bool, error)
	ListByMovie(ctx context.Context, movieID int64, requesterID string) ([]CommentView, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("User", "Movie").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("User").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check comment: %w", err)
	}
	return n > 0, nil
}

// ListByMovie returns the movie's comments newest first.
func (r *commentRepository) ListByMovie(ctx context.Context, movieID int64, requesterID string) ([]CommentView, error) {
	var rows []CommentView
	err := r.db.WithContext(ctx).
		Table("comments c").
		Select(`c.id, c.text, c.created_at, c.user_id,
			COALESCE(NULLIF(u.username, ''), u.email, '') AS user_name,
			(SELECT COUNT(*) FROM comment_likes cl WHERE cl.comment_id = c.id) AS likes_count,
			EXISTS (SELECT 1 FROM comment_likes cl WHERE cl.comment_id = c.id AND cl.user_id = ?) AS liked_by_me`, requesterID).
		Joins("LEFT JOIN users u ON u.id = c.user_id").
		Where("c.movie_id = ?", movieID).
		Order("c.created_at DESC, c.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return rows, nil
}

// Delete removes the comment and its likes.
func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error; err != nil {
			return fmt.Errorf("delete comment likes: %w", err)
		}
		if err := tx.Delete(&models.Comment{}, id).Error; err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}
		return nil
	})
}
