package repository

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"sneaksync/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一键冲突
	ErrDuplicate = errors.New("duplicate record")
)

// Collections 存储层管理的四个集合
var Collections = []interface{}{
	&model.Product{},
	&model.Listing{},
	&model.Offer{},
	&model.Order{},
}

// ==================== Store 文档存储网关 ====================

// Store 文档存储网关，按集合暴露仓储，不包含业务规则
type Store interface {
	Products() ProductRepository
	Listings() ListingRepository
	Offers() OfferRepository
	Orders() OrderRepository

	// Transaction 在同一事务内执行 fn，fn 返回错误时整体回滚
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
	CollectionNames(ctx context.Context) ([]string, error)
}

// gormStore 基于 GORM 的实现
type gormStore struct {
	db       *gorm.DB
	products ProductRepository
	listings ListingRepository
	offers   OfferRepository
	orders   OrderRepository
}

// NewStore 创建存储网关
func NewStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		products: NewProductRepository(db),
		listings: NewListingRepository(db),
		offers:   NewOfferRepository(db),
		orders:   NewOrderRepository(db),
	}
}

func (s *gormStore) Products() ProductRepository { return s.products }
func (s *gormStore) Listings() ListingRepository { return s.listings }
func (s *gormStore) Offers() OfferRepository     { return s.offers }
func (s *gormStore) Orders() OrderRepository     { return s.orders }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *gormStore) CollectionNames(ctx context.Context) ([]string, error) {
	tables, err := s.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}

// AutoMigrate 建表 / 迁移四个集合
func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(Collections...)
}

// translate 统一转换 GORM 错误
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
