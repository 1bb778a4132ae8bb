package handler_test

import (
	"context"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RegisterResponse), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	switch tokenString {
	case userToken:
		return &service.Claims{UserID: "u-1", Username: "alice", Roles: []string{models.RoleUser}}, nil
	case adminToken:
		return &service.Claims{UserID: "u-2", Username: "root", Roles: []string{models.RoleUser, models.RoleAdmin}}, nil
	}
	return nil, service.ErrInvalidToken
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) List(ctx context.Context, req service.Requester, f dto.MovieFilter) (*dto.PagedResponse[dto.MovieResponse], error) {
	args := m.Called(ctx, req, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedResponse[dto.MovieResponse]), args.Error(1)
}

func (m *MockMovieService) ListLiked(ctx context.Context, req service.Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.MovieResponse], error) {
	args := m.Called(ctx, req, paging)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedResponse[dto.MovieResponse]), args.Error(1)
}

func (m *MockMovieService) Get(ctx context.Context, req service.Requester, id int64) (*dto.MovieResponse, error) {
	args := m.Called(ctx, req, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Create(ctx context.Context, in dto.MovieInput) (*dto.MovieResponse, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Update(ctx context.Context, id int64, in dto.MovieInput) (*dto.MovieResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Patch(ctx context.Context, id int64, in dto.PatchMovieInput) (*dto.MovieResponse, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.MovieResponse), args.Error(1)
}

func (m *MockMovieService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMovieService) AddCategory(ctx context.Context, movieID, categoryID int64) error {
	return m.Called(ctx, movieID, categoryID).Error(0)
}

func (m *MockMovieService) RemoveCategory(ctx context.Context, movieID, categoryID int64) error {
	return m.Called(ctx, movieID, categoryID).Error(0)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Like(ctx context.Context, req service.Requester, movieID int64) (*dto.LikeResponse, error) {
	args := m.Called(ctx, req, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

func (m *MockLedgerService) Unlike(ctx context.Context, req service.Requester, movieID int64) (*dto.LikeResponse, error) {
	args := m.Called(ctx, req, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

func (m *MockLedgerService) Rate(ctx context.Context, req service.Requester, movieID int64, score int) (*dto.RatingResponse, error) {
	args := m.Called(ctx, req, movieID, score)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RatingResponse), args.Error(1)
}

func (m *MockLedgerService) SetStatus(ctx context.Context, req service.Requester, movieID int64, status models.WatchStatus) (*dto.StatusResponse, error) {
	args := m.Called(ctx, req, movieID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatusResponse), args.Error(1)
}

func (m *MockLedgerService) ClearStatus(ctx context.Context, req service.Requester, movieID int64) error {
	return m.Called(ctx, req, movieID).Error(0)
}

func (m *MockLedgerService) ListStatuses(ctx context.Context, req service.Requester) ([]dto.StatusResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]dto.StatusResponse), args.Error(1)
}

func (m *MockLedgerService) LikeComment(ctx context.Context, req service.Requester, commentID int64) error {
	return m.Called(ctx, req, commentID).Error(0)
}

func (m *MockLedgerService) UnlikeComment(ctx context.Context, req service.Requester, commentID int64) error {
	return m.Called(ctx, req, commentID).Error(0)
}

type MockCommentService struct {
	mock.Mock
}

func (m *MockCommentService) List(ctx context.Context, req service.Requester, movieID int64) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, req, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) Add(ctx context.Context, req service.Requester, movieID int64, text string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, req, movieID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockCommentService) DeleteOwn(ctx context.Context, req service.Requester, commentID int64) error {
	return m.Called(ctx, req, commentID).Error(0)
}

func (m *MockCommentService) DeleteAsAdmin(ctx context.Context, commentID int64) error {
	return m.Called(ctx, commentID).Error(0)
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, name string) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id int64, name string) (*dto.CategoryResponse, error) {
	args := m.Called(ctx, id, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategoryResponse), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockProposalService struct {
	mock.Mock
}

func (m *MockProposalService) Create(ctx context.Context, req service.Requester, in dto.CreateProposalRequest) (*dto.ProposalResponse, error) {
	args := m.Called(ctx, req, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProposalResponse), args.Error(1)
}

func (m *MockProposalService) Get(ctx context.Context, req service.Requester, id int64) (*dto.ProposalResponse, error) {
	args := m.Called(ctx, req, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProposalResponse), args.Error(1)
}

func (m *MockProposalService) Mine(ctx context.Context, req service.Requester, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error) {
	args := m.Called(ctx, req, paging)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedResponse[dto.ProposalResponse]), args.Error(1)
}

func (m *MockProposalService) List(ctx context.Context, status string, paging dto.PageQuery) (*dto.PagedResponse[dto.ProposalResponse], error) {
	args := m.Called(ctx, status, paging)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PagedResponse[dto.ProposalResponse]), args.Error(1)
}

func (m *MockProposalService) Approve(ctx context.Context, id int64) (*dto.ApproveResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ApproveResponse), args.Error(1)
}

func (m *MockProposalService) Reject(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) LikedMovies(ctx context.Context, req service.Requester) ([]repository.LikedMovieRow, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]repository.LikedMovieRow), args.Error(1)
}

func (m *MockReportService) MovieStatuses(ctx context.Context, req service.Requester) ([]repository.MovieStatusRow, error) {
	args := m.Called(ctx, req)
	return args.Get(0).([]repository.MovieStatusRow), args.Error(1)
}

func (m *MockReportService) UserMetrics(ctx context.Context, req service.Requester) (*repository.UserMetrics, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.UserMetrics), args.Error(1)
}

func (m *MockReportService) MovieRatings(ctx context.Context) ([]repository.MovieRatingRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.MovieRatingRow), args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context) (*repository.DashboardMetrics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardMetrics), args.Error(1)
}

func (m *MockReportService) ProposalsByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }
