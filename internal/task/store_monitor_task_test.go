package task

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sneaksync/internal/middleware"
	"sneaksync/internal/repository"
	"sneaksync/internal/service"
)

// ==================== 辅助函数 ====================

type fakeProber struct {
	calls atomic.Int32
	err   error
}

func (p *fakeProber) Probe(context.Context) error {
	p.calls.Add(1)
	return p.err
}

type fakeCleaner struct {
	idle    time.Duration
	removed int
}

func (c *fakeCleaner) Cleanup(idle time.Duration) int {
	c.idle = idle
	return c.removed
}

func setupTaskTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := repository.AutoMigrate(context.Background(), db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

// ==================== StoreMonitor 测试 ====================

func TestStoreMonitor_Execute(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prober := &fakeProber{err: errors.New("connection refused")}
	cleaner := &fakeCleaner{removed: 2}

	m := NewStoreMonitor(prober, cleaner, "*/30 * * * * *", zap.New(core))
	m.Execute(context.Background())

	assert.Equal(t, int32(1), prober.calls.Load())
	assert.Equal(t, 10*time.Minute, cleaner.idle)
	assert.Equal(t, 1, logs.FilterMessage("store probe failed").Len())
	assert.Equal(t, 1, logs.FilterMessage("rate limiter buckets evicted").Len())
}

func TestStoreMonitor_ExecuteNilDeps(t *testing.T) {
	m := NewStoreMonitor(nil, nil, "*/30 * * * * *", zap.NewNop())
	assert.NotPanics(t, func() { m.Execute(context.Background()) })
}

func TestStoreMonitor_StartInvalidSpec(t *testing.T) {
	prober := &fakeProber{}
	m := NewStoreMonitor(prober, nil, "every minute", zap.NewNop())

	err := m.Start()
	assert.Error(t, err)
	// 首次巡检在注册调度之前已经执行
	assert.Equal(t, int32(1), prober.calls.Load())
}

func TestStoreMonitor_StartStop(t *testing.T) {
	prober := &fakeProber{}
	m := NewStoreMonitor(prober, &fakeCleaner{}, "* * * * * *", zap.NewNop())

	require.NoError(t, m.Start())
	assert.Len(t, m.Cron.Entries(), 1)

	assert.Eventually(t, func() bool {
		return prober.calls.Load() >= 2
	}, 3*time.Second, 50*time.Millisecond)

	m.Stop()
}

func TestStoreMonitor_RefreshesAvailability(t *testing.T) {
	limiter := middleware.NewIPRateLimiter(1, 1)
	limiter.Check("10.0.0.1")

	// 未配置数据库
	health := service.NewHealthService(nil, "", "", zap.NewNop())
	m := NewStoreMonitor(health, limiter, "*/30 * * * * *", zap.NewNop())
	m.limiterIdle = 0
	m.Execute(context.Background())
	assert.False(t, health.Available())
	assert.Equal(t, 0, limiter.Cleanup(0))

	// 存储可用
	store := repository.NewStore(setupTaskTestDB(t))
	health = service.NewHealthService(store, "sqlite://memory", "", zap.NewNop())
	m = NewStoreMonitor(health, limiter, "*/30 * * * * *", zap.NewNop())
	m.Execute(context.Background())
	assert.True(t, health.Available())
}
