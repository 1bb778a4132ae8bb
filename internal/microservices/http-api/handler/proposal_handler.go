package handler

import (
	"net/http"

	"filmhub/internal/microservices/http-api/dto"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProposalHandler struct {
	svc service.ProposalService
}

func NewProposalHandler(svc service.ProposalService) *ProposalHandler {
	return &ProposalHandler{svc: svc}
}

func (h *ProposalHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.POST("/movie-proposals", g.User, h.Create)
	rg.GET("/movie-proposals/mine", g.User, h.Mine)
	rg.GET("/movie-proposals/:id", g.User, h.Get)

	admin := rg.Group("/admin/movie-proposals", g.User, g.Admin)
	admin.GET("", h.AdminList)
	admin.POST("/:id/approve", h.Approve)
	admin.POST("/:id/reject", h.Reject)
}

func (h *ProposalHandler) Create(c *gin.Context) {
	var in dto.CreateProposalRequest
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.svc.Create(c.Request.Context(), middleware.RequesterFrom(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *ProposalHandler) Mine(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, dto.DescribeBindingError(err))
		return
	}
	page, err := h.svc.Mine(c.Request.Context(), middleware.RequesterFrom(c), q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProposalHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.svc.Get(c.Request.Context(), middleware.RequesterFrom(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProposalHandler) AdminList(c *gin.Context) {
	var q dto.AdminProposalQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, dto.DescribeBindingError(err))
		return
	}
	page, err := h.svc.List(c.Request.Context(), q.Status, q.PageQuery)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProposalHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ProposalHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Reject(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
