package repository

import (
	"context"
	"fmt"
	"sort"

	"filmhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ProposalRepo struct {
	db *gorm.DB
}

func NewProposalRepo(db *gorm.DB) *ProposalRepo {
	return &ProposalRepo{db: db}
}

func (r *ProposalRepo) WithTx(tx *gorm.DB) *ProposalRepo {
	return &ProposalRepo{db: tx}
}

// Create inserts the proposal together with its category links.
func (r *ProposalRepo) Create(ctx context.Context, p *models.MovieProposal) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

// GetByID loads the proposal with its categories ordered by name.
func (r *ProposalRepo) GetByID(ctx context.Context, id int64) (*models.MovieProposal, error) {
	var p models.MovieProposal
	err := r.db.WithContext(ctx).
		Preload("Categories.Category").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	sortCategoriesByName(&p)
	return &p, nil
}

// ListByUser returns the user's proposals newest first.
func (r *ProposalRepo) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.MovieProposal, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("movie_proposals.user_id = ?", userID)
	}, page, pageSize)
}

// ListByStatus returns every proposal newest first; an empty status matches all.
func (r *ProposalRepo) ListByStatus(ctx context.Context, status models.ProposalStatus, page, pageSize int) ([]models.MovieProposal, int64, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("movie_proposals.status = ?", status)
	}, page, pageSize)
}

func (r *ProposalRepo) list(ctx context.Context, filter func(*gorm.DB) *gorm.DB, page, pageSize int) ([]models.MovieProposal, int64, error) {
	var list []models.MovieProposal
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MovieProposal{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count proposals: %w", err)
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Model(&models.MovieProposal{}).
		Scopes(filter).
		Preload("Categories.Category").
		Order("movie_proposals.created_at DESC, movie_proposals.id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list proposals: %w", err)
	}
	for i := range list {
		sortCategoriesByName(&list[i])
	}
	return list, total, nil
}

func sortCategoriesByName(p *models.MovieProposal) {
	sort.SliceStable(p.Categories, func(i, j int) bool {
		return categoryName(p.Categories[i]) < categoryName(p.Categories[j])
	})
}

func categoryName(link models.MovieProposalCategory) string {
	if link.Category == nil {
		return ""
	}
	return link.Category.Name
}

// TransitionFromPending moves a Pending proposal to status. It reports false
// when the proposal was no longer Pending, which is how a concurrent
// approval loses.
func (r *ProposalRepo) TransitionFromPending(ctx context.Context, id int64, status models.ProposalStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.MovieProposal{}).
		Where("id = ? AND status = ?", id, models.ProposalPending).
		Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("update proposal status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// CountByStatus returns the number of proposals per status; absent statuses are 0.
func (r *ProposalRepo) CountByStatus(ctx context.Context) (map[models.ProposalStatus]int64, error) {
	var rows []struct {
		Status models.ProposalStatus
		Cnt    int64
	}
	if err := r.db.WithContext(ctx).Model(&models.MovieProposal{}).
		Select("status, COUNT(*) AS cnt").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count proposals by status: %w", err)
	}
	out := map[models.ProposalStatus]int64{
		models.ProposalPending:  0,
		models.ProposalApproved: 0,
		models.ProposalRejected: 0,
	}
	for _, row := range rows {
		out[row.Status] = row.Cnt
	}
	return out, nil
}
