package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

// RegisterRoutes wires the category endpoints: reads are public, writes are
// admin-only.
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
	rg.DELETE("/:slug", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CategoryResponse, 0, len(list))
	for _, cat := range list {
		resp = append(resp, dto.CategoryFromModel(cat))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in dto.CategoryRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := in.ToModel()
	if err := h.svc.Create(c.Request.Context(), &model); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryFromModel(model))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.DeleteBySlug(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
