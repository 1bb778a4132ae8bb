package repository

import (
	"context"
	"errors"
	"fmt"

	"filmhub/database"
	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAlreadyLinked = errors.New("category already linked")

type MovieRepo struct {
	db *gorm.DB
}

func NewMovieRepo(db *gorm.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// WithTx returns a copy bound to tx.
func (r *MovieRepo) WithTx(tx *gorm.DB) *MovieRepo {
	return &MovieRepo{db: tx}
}

// List runs the count and the page query with the same predicates. The two
// statements are not wrapped in a snapshot.
func (r *MovieRepo) List(ctx context.Context, q MovieQuery) ([]models.Movie, int64, error) {
	var list []models.Movie
	var total int64
	preds := q.Predicates()

	// Count total records
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Scopes(preds...).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count movies: %w", err)
	}

	// Fetch paginated results
	if err := r.db.WithContext(ctx).
		Model(&models.Movie{}).
		Scopes(preds...).
		Scopes(q.Order()).
		Limit(q.PageSize).
		Offset(q.Offset()).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list movies: %w", err)
	}

	return list, total, nil
}

func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	var m models.Movie
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Movie{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check movie: %w", err)
	}
	return n > 0, nil
}

// ExistsByTitleAndYear matches the title exactly and treats a nil year as NULL.
func (r *MovieRepo) ExistsByTitleAndYear(ctx context.Context, title string, year *int) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Movie{}).Where("title = ?", title)
	if year == nil {
		q = q.Where("year IS NULL")
	} else {
		q = q.Where("year = ?", *year)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check movie title/year: %w", err)
	}
	return n > 0, nil
}

// Create inserts the movie and links the given categories. Ids that do not
// name an existing category are dropped. Direct creation and proposal
// approval both go through here.
func (r *MovieRepo) Create(ctx context.Context, m *models.Movie, categoryIDs []int64) error {
	ids, err := r.existingCategoryIDs(ctx, categoryIDs)
	if err != nil {
		return err
	}
	m.Categories = make([]models.MovieCategory, 0, len(ids))
	for _, id := range ids {
		m.Categories = append(m.Categories, models.MovieCategory{CategoryID: id})
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	// GORM will populate m.ID and the link movie ids
	return nil
}

// Update writes every editable column, including nil ones.
func (r *MovieRepo) Update(ctx context.Context, m *models.Movie) error {
	err := r.db.WithContext(ctx).
		Model(m).
		Select("title", "description", "cover_url", "year", "type",
			"duration_minutes", "seasons_count", "episodes_count", "updated_at").
		Updates(m).Error
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	return nil
}

// Delete removes the movie and every row that depends on it. It reports
// false when the movie did not exist.
func (r *MovieRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.Comment{}).Select("id").Where("movie_id = ?", id)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		for _, dep := range []any{&models.Comment{}, &models.Rating{}, &models.Like{}, &models.UserMovieStatus{}, &models.MovieCategory{}} {
			if err := tx.Where("movie_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		res := tx.Delete(&models.Movie{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete movie: %w", err)
	}
	return deleted, nil
}

// AddCategory links a category; ErrAlreadyLinked when the pair exists.
func (r *MovieRepo) AddCategory(ctx context.Context, movieID, categoryID int64) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.MovieCategory{MovieID: movieID, CategoryID: categoryID})
	if res.Error != nil {
		if database.IsUniqueViolation(res.Error) {
			return ErrAlreadyLinked
		}
		return fmt.Errorf("link category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyLinked
	}
	return nil
}

// RemoveCategory reports false when the pair was not linked.
func (r *MovieRepo) RemoveCategory(ctx context.Context, movieID, categoryID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("movie_id = ? AND category_id = ?", movieID, categoryID).
		Delete(&models.MovieCategory{})
	if res.Error != nil {
		return false, fmt.Errorf("unlink category: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// LoadStats computes the projection aggregates for a page of movies in one
// query per aggregate. Movies without rows get zero values.
func (r *MovieRepo) LoadStats(ctx context.Context, movieIDs []int64, requesterID string) (map[int64]models.MovieStats, error) {
	stats := make(map[int64]models.MovieStats, len(movieIDs))
	if len(movieIDs) == 0 {
		return stats, nil
	}
	for _, id := range movieIDs {
		stats[id] = models.MovieStats{MovieID: id, Categories: []models.Category{}}
	}
	db := r.db.WithContext(ctx)

	var ratings []struct {
		MovieID int64
		Avg     float64
		Cnt     int64
	}
	if err := db.Model(&models.Rating{}).
		Select("movie_id, AVG(score) AS avg, COUNT(*) AS cnt").
		Where("movie_id IN ?", movieIDs).
		Group("movie_id").
		Scan(&ratings).Error; err != nil {
		return nil, fmt.Errorf("aggregate ratings: %w", err)
	}
	for _, row := range ratings {
		s := stats[row.MovieID]
		s.Rating, s.RatingCount = row.Avg, row.Cnt
		stats[row.MovieID] = s
	}

	var likes []struct {
		MovieID int64
		Cnt     int64
	}
	if err := db.Model(&models.Like{}).
		Select("movie_id, COUNT(*) AS cnt").
		Where("movie_id IN ?", movieIDs).
		Group("movie_id").
		Scan(&likes).Error; err != nil {
		return nil, fmt.Errorf("aggregate likes: %w", err)
	}
	for _, row := range likes {
		s := stats[row.MovieID]
		s.LikesCount = row.Cnt
		stats[row.MovieID] = s
	}

	if requesterID != "" {
		var liked []int64
		if err := db.Model(&models.Like{}).
			Where("user_id = ? AND movie_id IN ?", requesterID, movieIDs).
			Pluck("movie_id", &liked).Error; err != nil {
			return nil, fmt.Errorf("load liked movies: %w", err)
		}
		for _, id := range liked {
			s := stats[id]
			s.LikedByMe = true
			stats[id] = s
		}
	}

	var cats []struct {
		MovieID int64
		ID      int64
		Name    string
	}
	if err := db.Table("movie_categories mc").
		Select("mc.movie_id, c.id, c.name").
		Joins("JOIN categories c ON c.id = mc.category_id").
		Where("mc.movie_id IN ?", movieIDs).
		Order("c.name ASC").
		Scan(&cats).Error; err != nil {
		return nil, fmt.Errorf("load movie categories: %w", err)
	}
	for _, row := range cats {
		s := stats[row.MovieID]
		s.Categories = append(s.Categories, models.Category{ID: row.ID, Name: row.Name})
		stats[row.MovieID] = s
	}

	return stats, nil
}

func (r *MovieRepo) existingCategoryIDs(ctx context.Context, ids []int64) ([]int64, error) {
	ids = distinctIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var found []int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	return found, nil
}
