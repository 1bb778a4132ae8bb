package handler

import (
	"net/http"

	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc service.ReportService
}

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	me := rg.Group("/me/reports", g.User)
	me.GET("/liked-movies", h.LikedMovies)
	me.GET("/movie-statuses", h.MovieStatuses)
	me.GET("/user-metrics", h.UserMetrics)

	admin := rg.Group("/admin/reports", g.User, g.Admin)
	admin.GET("/movies-ratings", h.MovieRatings)
	admin.GET("/dashboard-metrics", h.Dashboard)
	admin.GET("/proposals-count-by-status", h.ProposalsByStatus)
}

func (h *ReportHandler) LikedMovies(c *gin.Context) {
	rows, err := h.svc.LikedMovies(c.Request.Context(), middleware.RequesterFrom(c))
	respond(c, rows, err)
}

func (h *ReportHandler) MovieStatuses(c *gin.Context) {
	rows, err := h.svc.MovieStatuses(c.Request.Context(), middleware.RequesterFrom(c))
	respond(c, rows, err)
}

func (h *ReportHandler) UserMetrics(c *gin.Context) {
	m, err := h.svc.UserMetrics(c.Request.Context(), middleware.RequesterFrom(c))
	respond(c, m, err)
}

func (h *ReportHandler) MovieRatings(c *gin.Context) {
	rows, err := h.svc.MovieRatings(c.Request.Context())
	respond(c, rows, err)
}

func (h *ReportHandler) Dashboard(c *gin.Context) {
	m, err := h.svc.Dashboard(c.Request.Context())
	respond(c, m, err)
}

func (h *ReportHandler) ProposalsByStatus(c *gin.Context) {
	counts, err := h.svc.ProposalsByStatus(c.Request.Context())
	respond(c, counts, err)
}

func respond(c *gin.Context, body any, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
