package handler

import (
	"net/http"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// EngagementHandler exposes likes, ratings, watch status and comment likes.
type EngagementHandler struct {
	svc service.LedgerService
}

func NewEngagementHandler(svc service.LedgerService) *EngagementHandler {
	return &EngagementHandler{svc: svc}
}

func (h *EngagementHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.POST("/movies/:id/like", g.User, h.Like)
	rg.DELETE("/movies/:id/like", g.User, h.Unlike)
	rg.POST("/movies/:id/ratings", g.User, h.Rate)
	rg.PUT("/movies/:id/status", g.User, h.SetStatus)
	rg.DELETE("/movies/:id/status", g.User, h.ClearStatus)
	rg.GET("/me/statuses", g.User, h.ListStatuses)
	rg.POST("/comments/:id/like", g.User, h.LikeComment)
	rg.DELETE("/comments/:id/like", g.User, h.UnlikeComment)
}

func (h *EngagementHandler) Like(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Like(c.Request.Context(), middleware.RequesterFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) Unlike(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Unlike(c.Request.Context(), middleware.RequesterFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) Rate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.RateMovieRequest
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.svc.Rate(c.Request.Context(), middleware.RequesterFrom(c), id, in.Score)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.SetStatusRequest
	if !bindJSON(c, &in) {
		return
	}
	resp, err := h.svc.SetStatus(c.Request.Context(), middleware.RequesterFrom(c), id, in.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EngagementHandler) ClearStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.ClearStatus(c.Request.Context(), middleware.RequesterFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EngagementHandler) ListStatuses(c *gin.Context) {
	list, err := h.svc.ListStatuses(c.Request.Context(), middleware.RequesterFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *EngagementHandler) LikeComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.LikeComment(c.Request.Context(), middleware.RequesterFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EngagementHandler) UnlikeComment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.UnlikeComment(c.Request.Context(), middleware.RequesterFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
