package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/httpapi/dto"
	"reviewhub/internal/httpapi/middleware"
	"reviewhub/internal/httpapi/service"
)

type UserHandler struct {
	svc service.UserService
}

func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterRoutes wires the user admin endpoints plus the self-service profile
// routes. "me" is reserved at sign-up, so the static route never shadows a
// real username.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("/me", auth, h.GetMe)
	rg.PATCH("/me", auth, h.UpdateMe)

	admin := middleware.RequireAdmin()
	rg.GET("", auth, admin, h.List)
	rg.POST("", auth, admin, h.Create)
	rg.GET("/:username", auth, admin, h.Get)
	rg.PATCH("/:username", auth, admin, h.Update)
	rg.DELETE("/:username", auth, admin, h.Delete)
}

func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	list, total, err := h.svc.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		resp = append(resp, dto.UserFromModel(u))
	}
	c.JSON(http.StatusOK, dto.NewPage(resp, total))
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(*user))
}

func (h *UserHandler) Create(c *gin.Context) {
	var in dto.UserRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.UserFromModel(*user))
}

func (h *UserHandler) Update(c *gin.Context) {
	var in dto.UserUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), c.Param("username"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(*user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe returns the authenticated caller's own record.
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(*user))
}

// UpdateMe updates the caller's own record. The role field is never applied
// here, whatever the payload says.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var in dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserFromModel(*user))
}
