package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/screentocode/screen-to-code-backend/internal/account/domain"
	"github.com/screentocode/screen-to-code-backend/internal/account/service"
)

// QuotaMiddleware consumes one trial conversion per request. The caller
// identity comes from the X-User-Id header supplied by the auth layer in
// front of this service; anonymous callers are keyed by client IP. Callers
// on a paid plan (X-User-Plan) bypass the trial counter entirely.
func QuotaMiddleware(quota *service.QuotaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		plan := c.GetHeader("X-User-Plan")
		if plan == "pro" || plan == "enterprise" {
			c.Next()
			return
		}

		// Anonymous callers with no resolvable IP share one bucket; a
		// per-request key would never accumulate usage.
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			if ip := c.ClientIP(); ip != "" {
				userID = "anon:" + ip
			} else {
				userID = "anon:unknown"
			}
		}

		usage, err := quota.Consume(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrQuotaExceeded) {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"success": false,
					"error":   "Free trial limit reached",
					"used":    usage.Used,
					"limit":   usage.Limit,
				})
				return
			}
			// A broken quota store must not take the product down.
			c.Next()
			return
		}

		c.Header("X-Trial-Remaining", strconv.Itoa(usage.Remaining()))
		c.Next()
	}
}
