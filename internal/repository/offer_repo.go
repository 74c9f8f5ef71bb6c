package repository

import (
	"context"

	"gorm.io/gorm"

	"sneaksync/internal/model"
)

// OfferRepository 出价仓储接口
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	GetByID(ctx context.Context, id model.ID) (*model.Offer, error)
	ListByListing(ctx context.Context, listingID model.ID) ([]model.Offer, error)
}

type offerRepo struct {
	db *gorm.DB
}

// NewOfferRepository 创建出价仓储
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepo{db: db}
}

func (r *offerRepo) Create(ctx context.Context, offer *model.Offer) error {
	return translate(r.db.WithContext(ctx).Create(offer).Error)
}

func (r *offerRepo) GetByID(ctx context.Context, id model.ID) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, translate(err)
	}
	return &offer, nil
}

func (r *offerRepo) ListByListing(ctx context.Context, listingID model.ID) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, translate(err)
}
