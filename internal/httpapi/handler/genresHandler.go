package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type GenreHandler struct {
	svc service.GenreService
}

func NewGenreHandler(svc service.GenreService) *GenreHandler {
	return &GenreHandler{svc: svc}
}

func (h *GenreHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
	rg.DELETE("/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.GenreResponse, 0, len(list))
	for _, g := range list {
		resp = append(resp, dto.GenreFromModel(g))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *GenreHandler) Create(c *gin.Context) {
	var in dto.GenreRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := in.ToModel()
	if err := h.svc.Create(c.Request.Context(), &model); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.GenreFromModel(model))
}

func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
