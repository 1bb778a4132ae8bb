package service

import (
	"context"
	"errors"
	"strings"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
)

type CategoryService interface {
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Create(ctx context.Context, name string) (*dto.CategoryResponse, error)
	Update(ctx context.Context, id int64, name string) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id int64) error
}

type categoryService struct {
	repo *repository.CategoryRepo
}

func NewCategoryService(repo *repository.CategoryRepo) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for i := range list {
		out = append(out, dto.NewCategoryResponse(&list[i]))
	}
	return out, nil
}

func (s *categoryService) Create(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	taken, err := s.repo.NameTaken(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("category %q already exists", name)
	}

	c := &models.Category{Name: name}
	if err := s.repo.Create(ctx, c); err != nil {
		// lost a race with a concurrent create
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, conflict("category %q already exists", name)
		}
		return nil, err
	}
	resp := dto.NewCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) Update(ctx context.Context, id int64, name string) (*dto.CategoryResponse, error) {
	name, err := normalizeCategoryName(name)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "category", id)
	}
	taken, err := s.repo.NameTaken(ctx, name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("category %q already exists", name)
	}

	if err := s.repo.Rename(ctx, id, name); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			return nil, conflict("category %q already exists", name)
		}
		return nil, err
	}
	c.Name = name
	resp := dto.NewCategoryResponse(c)
	return &resp, nil
}

func (s *categoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("category %d not found", id)
	}
	return nil
}

func normalizeCategoryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name is required")
	}
	if len([]rune(name)) > 100 {
		return "", invalid("name must be at most 100 characters")
	}
	return name, nil
}
