package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware applies a token-bucket limiter per client IP. Limiters
// for idle clients are dropped after an hour so the map stays bounded.
func RateLimitMiddleware(perSecond int) gin.HandlerFunc {
	type entry struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		clients = make(map[string]*entry)
	)

	burst := perSecond * 2
	if burst < 1 {
		burst = 1
	}

	get := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()

		now := time.Now()
		e, ok := clients[ip]
		if !ok {
			e = &entry{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
			clients[ip] = e
		}
		e.lastSeen = now

		if len(clients) > 10000 {
			for k, v := range clients {
				if now.Sub(v.lastSeen) > time.Hour {
					delete(clients, k)
				}
			}
		}
		return e.limiter
	}

	return func(c *gin.Context) {
		if !get(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "too many requests",
			})
			return
		}
		c.Next()
	}
}
