package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ==================== IPRateLimiter 按客户端限流 ====================

// IPRateLimiter 每个 key（客户端 IP）一个令牌桶
type IPRateLimiter struct {
	limiters sync.Map // key -> *limiterEntry
	rps      rate.Limit
	burst    int
}

// limiterEntry 限流条目
type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

func NewIPRateLimiter(rps float64, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rps:   rate.Limit(rps),
		burst: burst,
	}
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 需要等待的时间
}

// Check 消耗一个令牌；令牌不足时不消耗并返回需要等待的时间
func (l *IPRateLimiter) Check(key string) CheckResult {
	actual, _ := l.limiters.LoadOrStore(key, &limiterEntry{
		limiter: rate.NewLimiter(l.rps, l.burst),
	})
	entry := actual.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	entry.lastSeen = now

	r := entry.limiter.ReserveN(now, 1)
	if !r.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Second}
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// Cleanup 清理超过 idle 未访问的条目，返回清理数量
func (l *IPRateLimiter) Cleanup(idle time.Duration) int {
	cutoff := time.Now().Add(-idle)
	removed := 0
	l.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		stale := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if stale {
			l.limiters.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Reset 重置指定 key 的限流
func (l *IPRateLimiter) Reset(key string) {
	l.limiters.Delete(key)
}
