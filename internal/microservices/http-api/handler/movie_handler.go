package handler

import (
	"net/http"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MovieHandler struct {
	svc service.MovieService
}

func NewMovieHandler(svc service.MovieService) *MovieHandler {
	return &MovieHandler{svc: svc}
}

func (h *MovieHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.GET("/movies", g.Optional, h.List)
	rg.GET("/movies/liked", g.User, h.ListLiked)
	rg.GET("/movies/:id", g.Optional, h.Get)

	// Admin-only routes
	rg.POST("/movies", g.User, g.Admin, h.Create)
	rg.PUT("/movies/:id", g.User, g.Admin, h.Update)
	rg.PATCH("/movies/:id", g.User, g.Admin, h.Patch)
	rg.DELETE("/movies/:id", g.User, g.Admin, h.Delete)
	rg.POST("/movies/:id/categories/:categoryId", g.User, g.Admin, h.AddCategory)
	rg.DELETE("/movies/:id/categories/:categoryId", g.User, g.Admin, h.RemoveCategory)
}

func (h *MovieHandler) List(c *gin.Context) {
	var q dto.MovieListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, dto.DescribeBindingError(err))
		return
	}
	filter, err := q.Filter()
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	page, err := h.svc.List(c.Request.Context(), middleware.RequesterFrom(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MovieHandler) ListLiked(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, dto.DescribeBindingError(err))
		return
	}
	page, err := h.svc.ListLiked(c.Request.Context(), middleware.RequesterFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.Get(c.Request.Context(), middleware.RequesterFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Create(c *gin.Context) {
	var in dto.MovieInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.MovieInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in dto.PatchMovieInput
	if !bindJSON(c, &in) {
		return
	}
	m, err := h.svc.Patch(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MovieHandler) AddCategory(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.svc.AddCategory(c.Request.Context(), movieID, categoryID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MovieHandler) RemoveCategory(c *gin.Context) {
	movieID, ok := pathID(c, "id")
	if !ok {
		return
	}
	categoryID, ok := pathID(c, "categoryId")
	if !ok {
		return
	}
	if err := h.svc.RemoveCategory(c.Request.Context(), movieID, categoryID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
