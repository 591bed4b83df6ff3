package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"reviewhub/internal/httpapi/models"
	"reviewhub/internal/httpapi/service"
)

// stubAuthService validates exactly one token string.
type stubAuthService struct {
	token  string
	claims *service.Claims
}

func (s *stubAuthService) SignUp(ctx context.Context, username, email string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAuthService) IssueToken(ctx context.Context, username, code string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	if tokenString != s.token {
		return nil, errors.New("invalid token")
	}
	return s.claims, nil
}

func authedRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id, _ := UserIDFromContext(c)
		role, _ := RoleFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": id, "role": string(role)})
	})
	router.GET("/protected", handlers...)
	return router
}

func get(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuth_ValidToken(t *testing.T) {
	auth := &stubAuthService{
		token:  "good-token",
		claims: &service.Claims{UserID: "user-1", Username: "bob", Role: string(models.RoleUser)},
	}
	router := authedRouter(Auth(auth))

	w := get(router, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuth_MissingHeader(t *testing.T) {
	router := authedRouter(Auth(&stubAuthService{}))

	w := get(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedHeader(t *testing.T) {
	router := authedRouter(Auth(&stubAuthService{token: "good-token"}))

	for _, header := range []string{"good-token", "Basic good-token", "Bearer"} {
		w := get(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestAuth_BadToken(t *testing.T) {
	router := authedRouter(Auth(&stubAuthService{token: "good-token"}))

	w := get(router, "Bearer forged-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		role models.Role
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleModerator, http.StatusForbidden},
		{models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		setRole := func(c *gin.Context) {
			c.Set("role", tt.role)
			c.Next()
		}
		router := authedRouter(setRole, RequireAdmin())

		w := get(router, "")
		assert.Equal(t, tt.want, w.Code, "role %s", tt.role)
	}
}

func TestRequireAdmin_NoRole(t *testing.T) {
	router := authedRouter(RequireAdmin())

	w := get(router, "")

	assert.Equal(t, http.StatusForbidden, w.Code)
}
