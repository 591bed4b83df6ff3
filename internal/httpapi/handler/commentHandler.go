package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type CommentHandler struct {
	svc service.CommentService
}

func NewCommentHandler(svc service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// RegisterRoutes wires the comment endpoints under
// /titles/:title_id/reviews/:review_id/comments.
func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", auth, h.Create)
	rg.PATCH("/:id", auth, h.Update)
	rg.DELETE("/:id", auth, h.Delete)
}

// pathIDs pulls the title and review ids shared by every comment route.
func commentPathIDs(c *gin.Context) (titleID, reviewID int64, ok bool) {
	titleID, ok = pathID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok = pathID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}

func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, ok := commentPathIDs(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	list, total, err := h.svc.ListByReview(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CommentResponse, 0, len(list))
	for _, cm := range list {
		resp = append(resp, dto.CommentFromModel(cm))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, ok := commentPathIDs(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	comment, err := h.svc.Get(c.Request.Context(), titleID, reviewID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(*comment))
}

func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, ok := commentPathIDs(c)
	if !ok {
		return
	}

	var in dto.CommentRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	comment, err := h.svc.Create(c.Request.Context(), titleID, reviewID, userID, in.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.CommentFromModel(*comment))
}

func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, ok := commentPathIDs(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in dto.CommentUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := middleware.UserIDFromContext(c)
	role, _ := middleware.RoleFromContext(c)

	comment, err := h.svc.Update(c.Request.Context(), titleID, reviewID, id, userID, role, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CommentFromModel(*comment))
}

func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, ok := commentPathIDs(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, _ := middleware.UserIDFromContext(c)
	role, _ := middleware.RoleFromContext(c)

	if err := h.svc.Delete(c.Request.Context(), titleID, reviewID, id, userID, role); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
