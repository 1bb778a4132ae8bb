package handler

import (
	"net/http"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.GET("/movies/:id/comments", g.Optional, h.List)
	rg.POST("/movies/:id/comments", g.User, h.Add)
	rg.DELETE("/comments/:id", g.User, h.Delete)
	rg.DELETE("/comments/:id/admin", g.User, g.Admin, h.AdminDelete)
}

// List returns a movie's comments newest first.
func (h *CommentHandler) List(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), middleware.RequesterFrom(c), movieID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *CommentHandler) Add(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.AddCommentRequest
	if !bindJSON(c, &in) {
		return
	}
	comment, err := h.svc.Add(c.Request.Context(), middleware.RequesterFrom(c), movieID, in.Text)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Delete removes the requester's own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOwn(c.Request.Context(), middleware.RequesterFrom(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CommentHandler) AdminDelete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteAsAdmin(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
