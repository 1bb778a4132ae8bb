package repository

import (
	"context"
	"errors"
	"fmt"

	"filmhub/database"
	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

var ErrDuplicateName = errors.New("category name already in use")

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) WithTx(tx *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: tx}
}

func (r *CategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	var list []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return n > 0, nil
}

// NameTaken reports whether another category already uses name. excludeID
// is ignored when 0.
func (r *CategoryRepo) NameTaken(ctx context.Context, name string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.Category{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return n > 0, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) Rename(ctx context.Context, id int64, name string) error {
	err := r.db.WithContext(ctx).Model(&models.Category{ID: id}).Update("name", name).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("rename category: %w", err)
	}
	return nil
}

// Delete detaches the category from movies and proposals before removing it.
// It reports false when the category did not exist.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.MovieCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.MovieProposalCategory{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("delete category: %w", err)
	}
	return deleted, nil
}

// ExistingIDs filters ids down to categories that exist, deduplicated.
func (r *CategoryRepo) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
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
