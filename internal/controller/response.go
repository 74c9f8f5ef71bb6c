package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/service"
)

// ==================== 统一错误响应 ====================
// 错误体保持 {"detail": "..."}，与旧服务兼容

// statusOf 业务错误 -> HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError 输出业务错误，5xx 记录日志
func respondError(c *gin.Context, log *zap.Logger, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"detail": service.Message(err)})
}

// respondBindError 参数绑定 / 校验失败统一 422
func respondBindError(c *gin.Context, err error) {
	detail := err.Error()
	if fields := dto.FieldErrors(err); len(fields) > 0 {
		detail = strings.Join(fields, "; ")
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": detail})
}
