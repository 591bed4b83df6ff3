package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"reviewhub/internal/httpapi/service"
	"reviewhub/internal/httpapi/validate"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pagination reads ?page= and ?page_size= with sane bounds.
func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// pathID parses a positive int64 path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// respondError maps service and store errors onto the HTTP error taxonomy.
func respondError(c *gin.Context, err error) {
	var slugErr *service.SlugError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.As(err, &slugErr),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUserConflict),
		errors.Is(err, validate.ErrUsernameReserved),
		errors.Is(err, validate.ErrUsernameInvalid),
		errors.Is(err, validate.ErrUsernameLength),
		errors.Is(err, validate.ErrSlugInvalid),
		errors.Is(err, validate.ErrYearInFuture):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
