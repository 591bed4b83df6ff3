package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rps int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auth", RateLimit(rps), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func hit(router *gin.Engine, ip string) int {
	req, _ := http.NewRequest("GET", "/auth", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit_BurstThenThrottle(t *testing.T) {
	router := limitedRouter(1)

	// burst is 2x the rate
	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1"))
}

func TestRateLimit_PerClient(t *testing.T) {
	router := limitedRouter(1)

	for i := 0; i < 3; i++ {
		hit(router, "10.0.0.1")
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(router, "10.0.0.1"))

	// a different client is unaffected
	assert.Equal(t, http.StatusOK, hit(router, "10.0.0.2"))
}

func TestRateLimit_SweepEvictsIdleClients(t *testing.T) {
	limiters := newClientLimiters(1)

	limiters.get("10.0.0.1")
	limiters.get("10.0.0.2")
	limiters.clients["10.0.0.1"].lastSeen = time.Now().Add(-limiterMaxIdle - time.Minute)

	limiters.sweep(limiterMaxIdle)

	assert.NotContains(t, limiters.clients, "10.0.0.1")
	assert.Contains(t, limiters.clients, "10.0.0.2")
}

func TestRateLimit_SweepKeepsActiveClients(t *testing.T) {
	limiters := newClientLimiters(1)

	limiters.get("10.0.0.1")
	limiters.sweep(limiterMaxIdle)

	// an active client keeps its bucket, and with it its consumed tokens
	assert.Contains(t, limiters.clients, "10.0.0.1")
}
