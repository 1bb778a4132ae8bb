package repository

import (
	"strings"

	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ratingScoreExpr is the mean score of a movie, 0 when it has no ratings.
const ratingScoreExpr = "COALESCE((SELECT AVG(r.score) FROM ratings r WHERE r.movie_id = movies.id), 0)"

// MovieQuery is a listing request with paging already clamped by the caller.
type MovieQuery struct {
	Search      string
	Type        models.ContentType // empty matches every type
	CategoryIDs []int64
	Mode        models.CategoryMode
	LikedBy     string // requester id when only liked movies are wanted
	SortBy      models.MovieSortBy
	SortDir     models.SortDirection
	Page        int
	PageSize    int
}

// Predicates returns one scope per active filter. They are AND-combined and
// must be applied to both the count and the page query.
func (q MovieQuery) Predicates() []func(*gorm.DB) *gorm.DB {
	var preds []func(*gorm.DB) *gorm.DB

	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(movies.title) LIKE ?", pattern)
		})
	}

	if q.Type != "" {
		t := q.Type
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("movies.type = ?", t)
		})
	}

	if ids := distinctIDs(q.CategoryIDs); len(ids) > 0 {
		if q.Mode == models.CategoryModeExact {
			// every link is inside the set and the link count equals the set size
			preds = append(preds, func(db *gorm.DB) *gorm.DB {
				return db.Where(
					"NOT EXISTS (SELECT 1 FROM movie_categories mc WHERE mc.movie_id = movies.id AND mc.category_id NOT IN ?) "+
						"AND (SELECT COUNT(DISTINCT mc.category_id) FROM movie_categories mc WHERE mc.movie_id = movies.id) = ?",
					ids, len(ids))
			})
		} else {
			preds = append(preds, func(db *gorm.DB) *gorm.DB {
				return db.Where("EXISTS (SELECT 1 FROM movie_categories mc WHERE mc.movie_id = movies.id AND mc.category_id IN ?)", ids)
			})
		}
	}

	if q.LikedBy != "" {
		userID := q.LikedBy
		preds = append(preds, func(db *gorm.DB) *gorm.DB {
			return db.Where("EXISTS (SELECT 1 FROM likes l WHERE l.movie_id = movies.id AND l.user_id = ?)", userID)
		})
	}

	return preds
}

// Order returns the sort scope. Rating ties break by ascending title in both directions.
func (q MovieQuery) Order() func(*gorm.DB) *gorm.DB {
	dir := "ASC"
	if q.SortDir == models.SortDesc {
		dir = "DESC"
	}

	var order string
	switch q.SortBy {
	case models.SortByYear:
		order = "movies.year " + dir
	case models.SortByRating:
		order = ratingScoreExpr + " " + dir + ", movies.title ASC"
	case models.SortByTitle:
		order = "movies.title " + dir
	default:
		order = "movies.title ASC"
	}

	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

func (q MovieQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

func distinctIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
