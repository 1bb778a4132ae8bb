package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/handler"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userToken  = "user-token"
	adminToken = "admin-token"
)

var alice = service.Requester{UserID: "u-1", Username: "alice", Roles: []string{models.RoleUser}}

type mocks struct {
	auth       *MockAuthService
	movies     *MockMovieService
	ledger     *MockLedgerService
	comments   *MockCommentService
	categories *MockCategoryService
	proposals  *MockProposalService
	reports    *MockReportService
}

// --- SETUP ---

func setupRouter(t *testing.T) (*gin.Engine, *mocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	m := &mocks{
		auth:       new(MockAuthService),
		movies:     new(MockMovieService),
		ledger:     new(MockLedgerService),
		comments:   new(MockCommentService),
		categories: new(MockCategoryService),
		proposals:  new(MockProposalService),
		reports:    new(MockReportService),
	}
	r := handler.NewRouter(handler.RouterConfig{
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		DB:         stubPinger{},
		Auth:       m.auth,
		Movies:     m.movies,
		Ledger:     m.ledger,
		Comments:   m.comments,
		Categories: m.categories,
		Proposals:  m.proposals,
		Reports:    m.reports,
	})
	t.Cleanup(func() {
		m.movies.AssertExpectations(t)
		m.ledger.AssertExpectations(t)
		m.comments.AssertExpectations(t)
		m.categories.AssertExpectations(t)
		m.proposals.AssertExpectations(t)
		m.reports.AssertExpectations(t)
	})
	return r, m
}

func doRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestWriteErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", &service.Error{Kind: service.ErrNotFound, Msg: "movie 9 not found"}, http.StatusNotFound, "movie 9 not found"},
		{"conflict", &service.Error{Kind: service.ErrConflict, Msg: "already approved"}, http.StatusConflict, "already approved"},
		{"validation", &service.Error{Kind: service.ErrValidation, Msg: "bad year"}, http.StatusBadRequest, "bad year"},
		{"forbidden", &service.Error{Kind: service.ErrForbidden, Msg: "not yours"}, http.StatusForbidden, "not yours"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, m := setupRouter(t)
			m.movies.On("Get", anyCtx, service.Requester{}, int64(9)).Return(nil, tt.err)

			w := doRequest(r, http.MethodGet, "/api/movies/9", "", nil)
			assert.Equal(t, tt.status, w.Code)
			p := decode[dto.ProblemResponse](t, w)
			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.detail, p.Detail)
		})
	}
}

func TestInvalidPathID(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/movies/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(r, http.MethodGet, "/api/movies/0", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownRoute(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, decode[dto.ProblemResponse](t, w).Status)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewHealthHandler(stubPinger{err: errors.New("down")}).RegisterRoutes(r.Group("/api"))
	w := doRequest(r, http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r, _ = setupRouter(t)
	w = doRequest(r, http.MethodGet, "/api/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWithCORS(t *testing.T) {
	r, _ := setupRouter(t)
	h := handler.WithCORS(r, []string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/movies", nil)
	req.Header.Set("Origin", "http://evil.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
