package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(r http.Handler, method, path, remoteAddr string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== 限流 ====================

func TestIPRateLimiter_Check(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)

	assert.True(t, limiter.Check("1.1.1.1").Allowed)
	assert.True(t, limiter.Check("1.1.1.1").Allowed)

	result := limiter.Check("1.1.1.1")
	assert.False(t, result.Allowed)
	assert.Greater(t, result.RetryAfter, time.Duration(0))

	// 不同 key 互不影响
	assert.True(t, limiter.Check("2.2.2.2").Allowed)

	limiter.Reset("1.1.1.1")
	assert.True(t, limiter.Check("1.1.1.1").Allowed)
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	limiter.Check("1.1.1.1")
	limiter.Check("2.2.2.2")

	assert.Equal(t, 0, limiter.Cleanup(time.Hour))
	assert.Equal(t, 2, limiter.Cleanup(0))
}

func TestWriteRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/checkout", WriteRateLimit(NewIPRateLimiter(0.001, 1)), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := performRequest(r, "POST", "/checkout", "10.0.0.1:1234")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "POST", "/checkout", "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "detail")

	w = performRequest(r, "POST", "/checkout", "10.0.0.2:1234")
	assert.Equal(t, http.StatusOK, w.Code)
}

// ==================== 存储可用性 ====================

type fakeChecker bool

func (f fakeChecker) Available() bool { return bool(f) }

func TestRequireStore(t *testing.T) {
	tests := []struct {
		name       string
		available  bool
		wantStatus int
	}{
		{"存储可用", true, http.StatusOK},
		{"存储不可用", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/products", RequireStore(fakeChecker(tt.available)), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})
			w := performRequest(r, "GET", "/products", "10.0.0.1:1234")
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// ==================== 日志 ====================

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	r := gin.New()
	r.Use(AccessLog(log), Recovery(log))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	performRequest(r, "GET", "/ok?q=dunk", "10.0.0.1:1234")
	performRequest(r, "GET", "/missing", "10.0.0.1:1234")
	w := performRequest(r, "GET", "/panic", "10.0.0.1:1234")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("request").All()
	if assert.Len(t, entries, 3) {
		assert.Equal(t, zap.InfoLevel, entries[0].Level)
		assert.Equal(t, "/ok?q=dunk", entries[0].ContextMap()["path"])
		assert.Equal(t, zap.WarnLevel, entries[1].Level)
		assert.Equal(t, zap.ErrorLevel, entries[2].Level)
	}
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

// ==================== 请求 ID ====================

func TestRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestID(), AccessLog(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, RequestIDFrom(c.Request.Context()))
	})

	// 生成新的 ID
	w := performRequest(r, "GET", "/ping", "10.0.0.1:1234")
	generated := w.Header().Get(HeaderRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	// 沿用上游 ID
	req, _ := http.NewRequest("GET", "/ping", nil)
	req.Header.Set(HeaderRequestID, "edge-42")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "edge-42", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "edge-42", w.Body.String())

	entries := logs.FilterMessage("request").All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, generated, entries[0].ContextMap()["request_id"])
		assert.Equal(t, "edge-42", entries[1].ContextMap()["request_id"])
	}
}
