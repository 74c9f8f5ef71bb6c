package dto

import (
	"time"

	"sneaksync/internal/model"
)

// CreateListingReq POST /listings
type CreateListingReq struct {
	SellerID    string     `json:"seller_id" binding:"required"`
	Product     ProductReq `json:"product" binding:"required"`
	Price       *float64   `json:"price" binding:"required,gte=0"`
	ListingType string     `json:"listing_type" binding:"required,oneof=fixed_price auction make_offer"`
	Currency    string     `json:"currency" binding:"omitempty,currency"`
}

type CreateListingResp struct {
	Status    string `json:"status"`
	ListingID string `json:"listing_id"`
	ProductID string `json:"product_id"`
}

// ListingResp 挂牌文档
type ListingResp struct {
	ID          string    `json:"id"`
	SellerID    string    `json:"seller_id"`
	ProductID   string    `json:"product_id"`
	Price       float64   `json:"price"`
	ListingType string    `json:"listing_type"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewListingResp(l *model.Listing) ListingResp {
	return ListingResp{
		ID:          l.ID.String(),
		SellerID:    l.SellerID,
		ProductID:   l.ProductID.String(),
		Price:       l.Price.InexactFloat64(),
		ListingType: string(l.ListingType),
		Currency:    l.SnapshotCurrency(),
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
