package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/repository"
	"reviewhub/internal/httpapi/service"
)

type TitleHandler struct {
	svc service.TitleService
}

func NewTitleHandler(svc service.TitleService) *TitleHandler {
	return &TitleHandler{svc: svc}
}

// RegisterRoutes wires the title endpoints. PUT is deliberately not routed;
// partial PATCH is the only update verb.
func (h *TitleHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:title_id", h.Get)
	rg.POST("", auth, middleware.RequireAdmin(), h.Create)
	rg.PATCH("/:title_id", auth, middleware.RequireAdmin(), h.Update)
	rg.DELETE("/:title_id", auth, middleware.RequireAdmin(), h.Delete)
}

func (h *TitleHandler) List(c *gin.Context) {
	// ?search= is an alias for the name substring filter
	name := c.Query("name")
	if name == "" {
		name = c.Query("search")
	}

	filter := repository.TitleFilter{
		Genre:    c.Query("genre"),
		Category: c.Query("category"),
		Name:     name,
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year filter"})
			return
		}
		filter.Year = &year
	}

	page, pageSize := pagination(c)
	list, total, err := h.svc.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TitleResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.TitleFromModel(t))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	title, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*title))
}

func (h *TitleHandler) Create(c *gin.Context) {
	var in dto.TitleRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TitleFromModel(*title))
}

func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	var in dto.TitleUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	title, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TitleFromModel(*title))
}

func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
