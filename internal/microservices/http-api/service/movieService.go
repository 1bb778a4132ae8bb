package service

import (
	"context"
	"errors"
	"fmt"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/notify"
)

type MovieService interface {
	List(ctx context.Context, req Requester, f dto.MovieFilter) (*dto.PagedResponse[dto.MovieResponse], error)
	ListLiked(ctx context.Context, req Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.MovieResponse], error)
	Get(ctx context.Context, req Requester, id int64) (*dto.MovieResponse, error)
	Create(ctx context.Context, in dto.MovieInput) (*dto.MovieResponse, error)
	Update(ctx context.Context, id int64, in dto.MovieInput) (*dto.MovieResponse, error)
	Patch(ctx context.Context, id int64, in dto.PatchMovieInput) (*dto.MovieResponse, error)
	Delete(ctx context.Context, id int64) error

	// movie <-> category links
	AddCategory(ctx context.Context, movieID, categoryID int64) error
	RemoveCategory(ctx context.Context, movieID, categoryID int64) error
}

type movieService struct {
	movies     *repository.MovieRepo
	categories *repository.CategoryRepo
	ledger     *repository.LedgerRepo
	notifier   *notify.Notifier
}

func NewMovieService(movies *repository.MovieRepo, categories *repository.CategoryRepo, ledger *repository.LedgerRepo, notifier *notify.Notifier) MovieService {
	return &movieService{movies: movies, categories: categories, ledger: ledger, notifier: notifier}
}

func (s *movieService) List(ctx context.Context, req Requester, f dto.MovieFilter) (*dto.PagedResponse[dto.MovieResponse], error) {
	page, pageSize := f.Paging.Clamp(dto.MovieListDefaultPageSize, dto.MovieListMaxPageSize)
	q := repository.MovieQuery{
		Search:      f.Search,
		Type:        f.Type,
		CategoryIDs: f.CategoryIDs,
		Mode:        f.Mode,
		SortBy:      f.SortBy,
		SortDir:     f.SortDir,
		Page:        page,
		PageSize:    pageSize,
	}
	if f.OnlyLiked {
		if !req.Authenticated() {
			return nil, unauthorized()
		}
		q.LikedBy = req.UserID
	}
	return s.page(ctx, req, q)
}

func (s *movieService) ListLiked(ctx context.Context, req Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.MovieResponse], error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	page, pageSize := paging.Clamp(dto.LikedListDefaultPageSize, dto.MovieListMaxPageSize)
	return s.page(ctx, req, repository.MovieQuery{
		LikedBy:  req.UserID,
		SortBy:   models.SortByTitle,
		SortDir:  models.SortAsc,
		Page:     page,
		PageSize: pageSize,
	})
}

func (s *movieService) page(ctx context.Context, req Requester, q repository.MovieQuery) (*dto.PagedResponse[dto.MovieResponse], error) {
	list, total, err := s.movies.List(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	stats, err := s.movies.LoadStats(ctx, ids, req.UserID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovieResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewMovieResponse(&list[i], stats[list[i].ID]))
	}
	return dto.NewPagedResponse(items, total, q.Page, q.PageSize), nil
}

func (s *movieService) Get(ctx context.Context, req Requester, id int64) (*dto.MovieResponse, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "movie", id)
	}
	resp, err := s.project(ctx, req, m)
	if err != nil {
		return nil, err
	}
	if req.Authenticated() {
		status, err := s.ledger.GetStatus(ctx, req.UserID, id)
		if err != nil {
			return nil, err
		}
		if status != nil {
			resp.MyStatus = &status.Status
		}
	}
	return resp, nil
}

func (s *movieService) Create(ctx context.Context, in dto.MovieInput) (*dto.MovieResponse, error) {
	m := in.ToModel()
	if err := m.Validate(); err != nil {
		return nil, invalidErr(err)
	}
	if err := s.movies.Create(ctx, &m, in.CategoryIDs); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{Type: notify.EventMovieCreated, MovieID: m.ID, Title: m.Title})
	return s.project(ctx, Requester{}, &m)
}

func (s *movieService) Update(ctx context.Context, id int64, in dto.MovieInput) (*dto.MovieResponse, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "movie", id)
	}
	in.ApplyTo(m)
	return s.save(ctx, m)
}

func (s *movieService) Patch(ctx context.Context, id int64, in dto.PatchMovieInput) (*dto.MovieResponse, error) {
	m, err := s.movies.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "movie", id)
	}
	in.ApplyTo(m)
	return s.save(ctx, m)
}

// save revalidates the merged movie before writing it.
func (s *movieService) save(ctx context.Context, m *models.Movie) (*dto.MovieResponse, error) {
	if err := m.Validate(); err != nil {
		return nil, invalidErr(err)
	}
	if err := s.movies.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.project(ctx, Requester{}, m)
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.movies.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("movie %d not found", id)
	}
	s.notifier.Notify(notify.Event{Type: notify.EventMovieDeleted, MovieID: id})
	return nil
}

func (s *movieService) AddCategory(ctx context.Context, movieID, categoryID int64) error {
	ok, err := s.movies.Exists(ctx, movieID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("movie %d not found", movieID)
	}
	ok, err = s.categories.Exists(ctx, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("category %d not found", categoryID)
	}

	if err := s.movies.AddCategory(ctx, movieID, categoryID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLinked) {
			return conflict("this category is already assigned to this movie")
		}
		return err
	}
	return nil
}

func (s *movieService) RemoveCategory(ctx context.Context, movieID, categoryID int64) error {
	removed, err := s.movies.RemoveCategory(ctx, movieID, categoryID)
	if err != nil {
		return err
	}
	if !removed {
		return notFound("this category is not assigned to this movie")
	}
	return nil
}

func (s *movieService) project(ctx context.Context, req Requester, m *models.Movie) (*dto.MovieResponse, error) {
	stats, err := s.movies.LoadStats(ctx, []int64{m.ID}, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("project movie %d: %w", m.ID, err)
	}
	resp := dto.NewMovieResponse(m, stats[m.ID])
	return &resp, nil
}
