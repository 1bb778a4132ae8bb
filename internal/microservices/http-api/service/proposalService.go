package service

import (
	"context"
	"strings"
	"time"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/notify"

	"gorm.io/gorm"
)

type ProposalService interface {
	Create(ctx context.Context, req Requester, in dto.CreateProposalRequest) (*dto.ProposalResponse, error)
	Get(ctx context.Context, req Requester, id int64) (*dto.ProposalResponse, error)
	Mine(ctx context.Context, req Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error)

	// admin workflow
	List(ctx context.Context, status string, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error)
	Approve(ctx context.Context, id int64) (*dto.ApproveResponse, error)
	Reject(ctx context.Context, id int64) error
}

type proposalService struct {
	db         *gorm.DB
	proposals  *repository.ProposalRepo
	movies     *repository.MovieRepo
	categories *repository.CategoryRepo
	notifier   *notify.Notifier
	now        func() time.Time
}

func NewProposalService(db *gorm.DB, proposals *repository.ProposalRepo, movies *repository.MovieRepo, categories *repository.CategoryRepo, notifier *notify.Notifier) ProposalService {
	return &proposalService{
		db:         db,
		proposals:  proposals,
		movies:     movies,
		categories: categories,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *proposalService) Create(ctx context.Context, req Requester, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, invalid("title is required")
	}
	if !in.Type.Valid() {
		return nil, invalid("type must be Movie or Series")
	}
	if !models.ValidYear(in.Year) {
		return nil, invalid("year must be between %d and %d", models.MinYear, models.MaxYear)
	}
	if len(in.CategoryIDs) == 0 {
		return nil, invalid("at least one category is required")
	}

	// unknown ids are dropped, not rejected
	known, err := s.categories.ExistingIDs(ctx, in.CategoryIDs)
	if err != nil {
		return nil, err
	}

	p := in.ToModel(req.UserID, s.now().UTC())
	for _, id := range known {
		p.Categories = append(p.Categories, models.MovieProposalCategory{CategoryID: id})
	}
	if err := s.proposals.Create(ctx, &p); err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{Type: notify.EventProposalCreated, ProposalID: p.ID, Title: p.Title, UserID: p.UserID})

	created, err := s.proposals.GetByID(ctx, p.ID)
	if err != nil {
		return nil, lookupErr(err, "proposal", p.ID)
	}
	resp := dto.NewProposalResponse(created)
	return &resp, nil
}

func (s *proposalService) Get(ctx context.Context, req Requester, id int64) (*dto.ProposalResponse, error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "proposal", id)
	}
	if p.UserID != req.UserID && !req.IsAdmin() {
		return nil, forbidden("you can only view your own proposals")
	}
	resp := dto.NewProposalResponse(p)
	return &resp, nil
}

func (s *proposalService) Mine(ctx context.Context, req Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error) {
	if !req.Authenticated() {
		return nil, unauthorized()
	}
	page, pageSize := paging.Clamp(dto.MyProposalsDefaultPageSize, dto.MyProposalsMaxPageSize)
	list, total, err := s.proposals.ListByUser(ctx, req.UserID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toProposalPage(list, total, page, pageSize), nil
}

func (s *proposalService) List(ctx context.Context, status string, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error) {
	var filter models.ProposalStatus
	if status = strings.TrimSpace(status); status != "" {
		parsed, ok := models.ParseProposalStatus(status)
		if !ok {
			return nil, invalid("status must be one of: Pending, Approved, Rejected")
		}
		filter = parsed
	}

	page, pageSize := paging.Clamp(dto.AdminProposalsDefaultPageSize, dto.AdminProposalsMaxPageSize)
	list, total, err := s.proposals.ListByStatus(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}
	return toProposalPage(list, total, page, pageSize), nil
}

// Approve turns a Pending proposal into a catalog movie. The movie, its
// category links and the status flip commit together or not at all.
func (s *proposalService) Approve(ctx context.Context, id int64) (*dto.ApproveResponse, error) {
	var movie models.Movie
	var title string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		proposals := s.proposals.WithTx(tx)
		movies := s.movies.WithTx(tx)

		p, err := proposals.GetByID(ctx, id)
		if err != nil {
			return lookupErr(err, "proposal", id)
		}
		if !p.Status.CanTransitionTo(models.ProposalApproved) {
			return conflict("proposal %d is already %s", id, p.Status)
		}
		if !p.Type.Valid() {
			return invalid("proposal type %q is not a known content type", p.Type)
		}
		if !models.ValidYear(p.Year) {
			return invalid("proposal year %d is outside %d-%d", p.Year, models.MinYear, models.MaxYear)
		}

		year := p.Year
		dup, err := movies.ExistsByTitleAndYear(ctx, p.Title, &year)
		if err != nil {
			return err
		}
		if dup {
			return conflict("a movie titled %q from %d already exists", p.Title, p.Year)
		}

		// shape fields stay empty, the proposal does not carry them
		movie = models.Movie{Title: p.Title, Year: &year, Type: p.Type}
		if err := movies.Create(ctx, &movie, p.CategoryIDs()); err != nil {
			return err
		}

		moved, err := proposals.TransitionFromPending(ctx, id, models.ProposalApproved)
		if err != nil {
			return err
		}
		if !moved {
			return conflict("proposal %d is no longer pending", id)
		}
		title = p.Title
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(notify.Event{Type: notify.EventProposalApproved, ProposalID: id, MovieID: movie.ID, Title: title})
	return &dto.ApproveResponse{ProposalID: id, MovieID: movie.ID}, nil
}

func (s *proposalService) Reject(ctx context.Context, id int64) error {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return lookupErr(err, "proposal", id)
	}
	if !p.Status.CanTransitionTo(models.ProposalRejected) {
		return conflict("proposal %d is already %s", id, p.Status)
	}

	moved, err := s.proposals.TransitionFromPending(ctx, id, models.ProposalRejected)
	if err != nil {
		return err
	}
	if !moved {
		return conflict("proposal %d is no longer pending", id)
	}

	s.notifier.Notify(notify.Event{Type: notify.EventProposalRejected, ProposalID: id, Title: p.Title})
	return nil
}

func toProposalPage(list []models.MovieProposal, total int64, page, pageSize int) *dto.PagedResponse[dto.ProposalResponse] {
	items := make([]dto.ProposalResponse, 0, len(list))
	for i := range list {
		items = append(items, dto.NewProposalResponse(&list[i]))
	}
	return dto.NewPagedResponse(items, total, page, pageSize)
}
