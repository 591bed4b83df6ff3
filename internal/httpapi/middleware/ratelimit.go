package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	limiterMaxIdle     = 10 * time.Minute
	limiterSweepPeriod = time.Minute
)

// clientLimiters holds one token bucket per client IP. Entries idle past
// limiterMaxIdle are swept so a scan of spoofed addresses cannot grow the map
// for the process lifetime.
type clientLimiters struct {
	mu      sync.Mutex
	rps     int
	clients map[string]*clientLimiter
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newClientLimiters(rps int) *clientLimiters {
	return &clientLimiters{
		rps:     rps,
		clients: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(l.rps), l.rps*2)}
		l.clients[ip] = c
	}
	c.lastSeen = time.Now()
	return c.limiter
}

func (l *clientLimiters) sweep(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	for ip, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, ip)
		}
	}
}

// RateLimit throttles requests per client IP. Used on the public auth
// endpoints to slow down confirmation-code guessing.
func RateLimit(rps int) gin.HandlerFunc {
	limiters := newClientLimiters(rps)

	go func() {
		for range time.Tick(limiterSweepPeriod) {
			limiters.sweep(limiterMaxIdle)
		}
	}()

	return func(c *gin.Context) {
		if !limiters.get(c.ClientIP()).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
