package service

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"

	"sneaksync/internal/repository"
)

const maxDiagnosticCollections = 10

// Diagnostic /test 诊断结果，字段与旧服务保持一致
type Diagnostic struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// HealthService 存储可用性
// store 为 nil 表示未配置 DATABASE_URL
type HealthService struct {
	store           repository.Store
	databaseURLSet  bool
	databaseNameSet bool
	available       atomic.Bool
	logger          *zap.Logger
}

func NewHealthService(store repository.Store, databaseURL, databaseName string, logger *zap.Logger) *HealthService {
	s := &HealthService{
		store:           store,
		databaseURLSet:  databaseURL != "",
		databaseNameSet: databaseName != "",
		logger:          logger,
	}
	s.available.Store(store != nil)
	return s
}

// Available 数据接口是否可以访问存储
func (s *HealthService) Available() bool {
	return s.store != nil && s.available.Load()
}

// Probe 探测一次存储并更新可用标记，由定时任务调用
func (s *HealthService) Probe(ctx context.Context) error {
	if s.store == nil {
		return errDatabaseUnavailable
	}

	err := s.store.Ping(ctx)
	s.setAvailable(err == nil, err)
	if err != nil {
		return newError(ErrServiceUnavailable, "Database unreachable")
	}
	return nil
}

func (s *HealthService) setAvailable(ok bool, cause error) {
	prev := s.available.Swap(ok)
	switch {
	case prev && !ok:
		s.logger.Warn("store became unavailable", zap.Error(cause))
	case !prev && ok:
		s.logger.Info("store is available again")
	}
}

// Diagnose 生成 /test 诊断信息
func (s *HealthService) Diagnose(ctx context.Context) Diagnostic {
	d := Diagnostic{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		DatabaseURL:      setOrNot(s.databaseURLSet),
		DatabaseName:     setOrNot(s.databaseNameSet),
	}

	if s.store == nil {
		d.Database = "⚠️  Available but not initialized"
		return d
	}

	if err := s.store.Ping(ctx); err != nil {
		s.setAvailable(false, err)
		d.Database = "❌ Error: " + truncate(err.Error(), 50)
		return d
	}
	s.setAvailable(true, nil)
	d.ConnectionStatus = "Connected"

	names, err := s.store.CollectionNames(ctx)
	if err != nil {
		d.Database = "⚠️  Connected but Error: " + truncate(err.Error(), 50)
		return d
	}
	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	d.Collections = names
	d.Database = "✅ Connected & Working"
	return d
}

func setOrNot(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
