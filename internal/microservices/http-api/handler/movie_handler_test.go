package handler_test

import (
	"net/http"
	"testing"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/models"
	"filmhub/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var anyCtx = mock.Anything

func intPtr(i int) *int { return &i }

func TestMovieHandler_List(t *testing.T) {
	r, m := setupRouter(t)

	page := dto.NewPagedResponse([]dto.MovieResponse{{ID: 1, Title: "Heat"}}, 1, 2, 5)
	m.movies.On("List", anyCtx, service.Requester{}, mock.MatchedBy(func(f dto.MovieFilter) bool {
		return f.Search == "heat" &&
			f.Mode == models.CategoryModeExact &&
			f.SortBy == models.SortByRating &&
			f.SortDir == models.SortDesc &&
			assert.ObjectsAreEqual([]int64{1, 2, 3}, f.CategoryIDs) &&
			f.Paging.Page != nil && *f.Paging.Page == 2 &&
			f.Paging.PageSize != nil && *f.Paging.PageSize == 5
	})).Return(page, nil)

	w := doRequest(r, http.MethodGet, "/api/movies?search=heat&mode=exact&sortBy=Rating&sortDir=desc&categoryIds=1,2&categoryIds=3&page=2&pageSize=5", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.PagedResponse[dto.MovieResponse]](t, w)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, "Heat", got.Items[0].Title)
}

func TestMovieHandler_ListRejectsUnknownEnum(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/movies?sortBy=popularity", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[dto.ProblemResponse](t, w).Detail, "sortBy")
}

func TestMovieHandler_OnlyLikedAnonymous(t *testing.T) {
	r, m := setupRouter(t)
	m.movies.On("List", anyCtx, service.Requester{}, mock.MatchedBy(func(f dto.MovieFilter) bool { return f.OnlyLiked })).
		Return(nil, &service.Error{Kind: service.ErrUnauthorized, Msg: "authentication required"})

	w := doRequest(r, http.MethodGet, "/api/movies?onlyLiked=true", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMovieHandler_GetPassesRequester(t *testing.T) {
	r, m := setupRouter(t)
	status := models.WatchStatusWatching
	m.movies.On("Get", anyCtx, alice, int64(4)).Return(&dto.MovieResponse{ID: 4, Title: "Heat", MyStatus: &status}, nil)

	w := doRequest(r, http.MethodGet, "/api/movies/4", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.WatchStatusWatching, *decode[dto.MovieResponse](t, w).MyStatus)
}

func TestMovieHandler_LikedRequiresToken(t *testing.T) {
	r, _ := setupRouter(t)

	w := doRequest(r, http.MethodGet, "/api/movies/liked", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMovieHandler_CreateAuthorization(t *testing.T) {
	r, _ := setupRouter(t)
	body := map[string]any{"title": "Heat", "type": "Movie", "durationMinutes": 170}

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodPost, "/api/movies", "", body).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodPost, "/api/movies", userToken, body).Code)
}

func TestMovieHandler_CreateValidatesShape(t *testing.T) {
	r, m := setupRouter(t)

	tests := []struct {
		name   string
		body   map[string]any
		detail string
	}{
		{"movie without duration", map[string]any{"title": "Heat", "type": "Movie"}, "durationMinutes"},
		{"movie with seasons", map[string]any{"title": "Heat", "type": "Movie", "durationMinutes": 170, "seasonsCount": 1}, "seasonsCount"},
		{"series without episodes", map[string]any{"title": "Fargo", "type": "Series", "seasonsCount": 5}, "episodesCount"},
		{"unknown type", map[string]any{"title": "Heat", "type": "Short"}, "type"},
		{"year out of range", map[string]any{"title": "Heat", "type": "Movie", "durationMinutes": 170, "year": 1800}, "year"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/api/movies", adminToken, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decode[dto.ProblemResponse](t, w).Detail, tt.detail)
		})
	}

	m.movies.On("Create", anyCtx, mock.MatchedBy(func(in dto.MovieInput) bool {
		return in.Title == "Fargo" && in.Type == models.ContentTypeSeries && *in.SeasonsCount == 5
	})).Return(&dto.MovieResponse{ID: 10, Title: "Fargo", Type: models.ContentTypeSeries}, nil)

	w := doRequest(r, http.MethodPost, "/api/movies", adminToken, map[string]any{
		"title": "Fargo", "type": "Series", "seasonsCount": 5, "episodesCount": 51,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 10, decode[dto.MovieResponse](t, w).ID)
}

func TestMovieHandler_PatchAndDelete(t *testing.T) {
	r, m := setupRouter(t)

	m.movies.On("Patch", anyCtx, int64(3), mock.MatchedBy(func(in dto.PatchMovieInput) bool {
		return in.Year != nil && *in.Year == 1996 && in.Title == nil
	})).Return(&dto.MovieResponse{ID: 3, Year: intPtr(1996)}, nil)
	m.movies.On("Delete", anyCtx, int64(3)).Return(nil)
	m.movies.On("Delete", anyCtx, int64(4)).Return(&service.Error{Kind: service.ErrNotFound, Msg: "movie 4 not found"})

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodPatch, "/api/movies/3", adminToken, map[string]any{"year": 1996}).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/movies/3", adminToken, nil).Code)
	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodDelete, "/api/movies/4", adminToken, nil).Code)
}

func TestMovieHandler_CategoryLinks(t *testing.T) {
	r, m := setupRouter(t)
	m.movies.On("AddCategory", anyCtx, int64(1), int64(2)).Return(nil).Once()
	m.movies.On("AddCategory", anyCtx, int64(1), int64(2)).Return(&service.Error{Kind: service.ErrConflict, Msg: "already assigned"}).Once()
	m.movies.On("RemoveCategory", anyCtx, int64(1), int64(2)).Return(nil)

	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodPost, "/api/movies/1/categories/2", adminToken, nil).Code)
	assert.Equal(t, http.StatusConflict, doRequest(r, http.MethodPost, "/api/movies/1/categories/2", adminToken, nil).Code)
	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/api/movies/1/categories/2", adminToken, nil).Code)
}
