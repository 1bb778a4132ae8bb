package handler_test

import (
	"net/http"
	"testing"

	"filmhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
)

func TestReportHandler(t *testing.T) {
	r, m := setupRouter(t)
	m.reports.On("UserMetrics", anyCtx, alice).Return(&repository.UserMetrics{LikedMovies: 3, WatchedMovies: 1}, nil)
	m.reports.On("ProposalsByStatus", anyCtx).Return(map[string]int64{"Pending": 2, "Approved": 0, "Rejected": 1}, nil)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/api/me/reports/user-metrics", "", nil).Code)

	w := doRequest(r, http.MethodGet, "/api/me/reports/user-metrics", userToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode[repository.UserMetrics](t, w).LikedMovies)

	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/api/admin/reports/proposals-count-by-status", userToken, nil).Code)

	w = doRequest(r, http.MethodGet, "/api/admin/reports/proposals-count-by-status", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int64{"Pending": 2, "Approved": 0, "Rejected": 1}, decode[map[string]int64](t, w))
}
