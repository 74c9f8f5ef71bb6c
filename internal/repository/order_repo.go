package repository

import (
	"context"

	"gorm.io/gorm"

	"sneaksync/internal/model"
)

// ==================== OrderRepository 订单仓储 ====================

// OrderRepository 订单仓储接口
// 订单创建后不可改写金额，因此不提供整行 Update
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id model.ID) (*model.Order, error)
	CountByListing(ctx context.Context, listingID model.ID) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return translate(r.db.WithContext(ctx).Create(order).Error)
}

func (r *orderRepository) GetByID(ctx context.Context, id model.ID) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *orderRepository) CountByListing(ctx context.Context, listingID model.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("listing_id = ?", listingID).Count(&count).Error
	return count, translate(err)
}
