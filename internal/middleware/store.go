package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StoreChecker 存储可用性
type StoreChecker interface {
	Available() bool
}

// RequireStore 存储未配置或不可达时直接返回 503
func RequireStore(checker StoreChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !checker.Available() {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"detail": "Database not configured",
			})
			return
		}
		c.Next()
	}
}
