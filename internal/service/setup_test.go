package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
	"sneaksync/internal/repository/mock"
)

// ==================== 测试辅助 ====================

func setupServiceTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	if err := repository.AutoMigrate(context.Background(), db); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func setupStore(t *testing.T) repository.Store {
	return repository.NewStore(setupServiceTestDB(t))
}

// seedListing 直接通过仓储写入挂牌
func seedListing(t *testing.T, store repository.Store, price string, status model.ListingStatus) *model.Listing {
	listing := &model.Listing{
		SellerID:    "seller-1",
		ProductID:   model.NewID(),
		Price:       decimal.RequireFromString(price),
		ListingType: model.ListingTypeFixedPrice,
		Currency:    "USD",
		Status:      status,
	}
	require.NoError(t, store.Listings().Create(context.Background(), listing))
	return listing
}

// mockStore 事务直接在 mock 自身上执行回调
type mockStore struct {
	store    *mock.MockStore
	products *mock.MockProductRepository
	listings *mock.MockListingRepository
	offers   *mock.MockOfferRepository
	orders   *mock.MockOrderRepository
}

func newMockStore(t *testing.T) *mockStore {
	ctrl := gomock.NewController(t)
	m := &mockStore{
		store:    mock.NewMockStore(ctrl),
		products: mock.NewMockProductRepository(ctrl),
		listings: mock.NewMockListingRepository(ctrl),
		offers:   mock.NewMockOfferRepository(ctrl),
		orders:   mock.NewMockOrderRepository(ctrl),
	}
	m.store.EXPECT().Products().Return(m.products).AnyTimes()
	m.store.EXPECT().Listings().Return(m.listings).AnyTimes()
	m.store.EXPECT().Offers().Return(m.offers).AnyTimes()
	m.store.EXPECT().Orders().Return(m.orders).AnyTimes()
	m.store.EXPECT().Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(repository.Store) error) error {
			return fn(m.store)
		}).AnyTimes()
	return m
}

func nopLogger() *zap.Logger {
	return zap.NewNop()
}
