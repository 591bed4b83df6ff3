package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes wires the review endpoints under /titles/:title_id/reviews.
// Reads are public; writes need authentication, with the author/moderator/admin
// check applied per object in the service.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", auth, h.Create)
	rg.PATCH("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)
}

func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	list, total, err := h.svc.ListByTitle(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ReviewResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, dto.ReviewFromModel(r))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	review, err := h.svc.Get(c.Request.Context(), titleID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(*review))
}

func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}

	var in dto.ReviewRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	review, err := h.svc.Create(c.Request.Context(), titleID, userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ReviewFromModel(*review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in dto.ReviewUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserIDFromContext(c)
	role, _ := middleware.RoleFromContext(c)

	review, err := h.svc.Update(c.Request.Context(), titleID, id, userID, role, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReviewFromModel(*review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromContext(c)
	role, _ := middleware.RoleFromContext(c)

	if err := h.svc.Delete(c.Request.Context(), titleID, id, userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
