package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ==================== 写接口限流中间件 ====================

// WriteRateLimit 按客户端 IP 限流
//
// 使用示例:
//
//	limiter := middleware.NewIPRateLimiter(5, 10)
//	r.POST("/checkout", middleware.WriteRateLimit(limiter), checkoutCtl.Checkout)
func WriteRateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := limiter.Check(c.ClientIP())
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "Too many requests, retry after " + strconv.Itoa(retryAfter) + "s",
			})
			return
		}
		c.Next()
	}
}
