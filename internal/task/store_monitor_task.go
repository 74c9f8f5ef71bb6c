package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Prober 存储探活
type Prober interface {
	Probe(ctx context.Context) error
}

// LimiterCleaner 清理长期不活跃的限流桶
type LimiterCleaner interface {
	Cleanup(idle time.Duration) int
}

// StoreMonitor 存储巡检任务
// 定时 Ping 存储刷新可用状态，顺带回收限流器里的闲置桶
type StoreMonitor struct {
	prober  Prober
	limiter LimiterCleaner
	logger  *zap.Logger
	Cron    *cron.Cron

	spec         string
	probeTimeout time.Duration
	limiterIdle  time.Duration
}

func NewStoreMonitor(prober Prober, limiter LimiterCleaner, spec string, logger *zap.Logger) *StoreMonitor {
	return &StoreMonitor{
		prober:       prober,
		limiter:      limiter,
		logger:       logger.Named("store_monitor"),
		Cron:         cron.New(cron.WithSeconds()), // 支持秒级控制
		spec:         spec,
		probeTimeout: 5 * time.Second,
		limiterIdle:  10 * time.Minute,
	}
}

// Start 注册并启动巡检；启动前先同步执行一次，让可用状态尽早就绪
func (m *StoreMonitor) Start() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout)
	m.Execute(ctx)
	cancel()

	_, err := m.Cron.AddFunc(m.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), m.probeTimeout)
		defer cancel()

		m.Execute(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule store monitor %q: %w", m.spec, err)
	}

	m.Cron.Start()
	m.logger.Info("store monitor started", zap.String("spec", m.spec))
	return nil
}

// Stop 停止调度并等待正在执行的巡检结束
func (m *StoreMonitor) Stop() {
	<-m.Cron.Stop().Done()
	m.logger.Info("store monitor stopped")
}

// Execute 执行一次巡检
func (m *StoreMonitor) Execute(ctx context.Context) {
	if m.prober != nil {
		if err := m.prober.Probe(ctx); err != nil {
			m.logger.Warn("store probe failed", zap.Error(err))
		}
	}

	if m.limiter != nil {
		if n := m.limiter.Cleanup(m.limiterIdle); n > 0 {
			m.logger.Debug("rate limiter buckets evicted", zap.Int("count", n))
		}
	}
}
