package repository

import (
	"context"

	"gorm.io/gorm"

	"sneaksync/internal/model"
)

// ListingRepository 挂牌仓储接口
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	GetByID(ctx context.Context, id model.ID) (*model.Listing, error)
	// MarkSold 条件更新：仅当挂牌仍可购买时改为 sold，返回是否有行被修改
	MarkSold(ctx context.Context, id model.ID) (bool, error)
}

type listingRepo struct {
	db *gorm.DB
}

// NewListingRepository 创建挂牌仓储
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepo{db: db}
}

func (r *listingRepo) Create(ctx context.Context, listing *model.Listing) error {
	return translate(r.db.WithContext(ctx).Create(listing).Error)
}

func (r *listingRepo) GetByID(ctx context.Context, id model.ID) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, translate(err)
	}
	return &listing, nil
}

func (r *listingRepo) MarkSold(ctx context.Context, id model.ID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.Listing{}).
		Where("id = ?", id).
		Where("(status = ? OR status = '' OR status IS NULL)", model.ListingStatusActive).
		Update("status", model.ListingStatusSold)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected == 1, nil
}
