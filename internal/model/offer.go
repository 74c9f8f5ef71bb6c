package model

import (
	"github.com/shopspring/decimal"
)

// OfferStatus 出价状态
// 目前只有 pending 会被写入，其余状态暂无接口驱动
type OfferStatus string

const (
	OfferStatusPending   OfferStatus = "pending"
	OfferStatusAccepted  OfferStatus = "accepted"
	OfferStatusRejected  OfferStatus = "rejected"
	OfferStatusCountered OfferStatus = "countered"
	OfferStatusExpired   OfferStatus = "expired"
	OfferStatusWithdrawn OfferStatus = "withdrawn"
)

// Offer 买家出价 (集合: offers)
type Offer struct {
	BaseModel

	BuyerID    string          `gorm:"size:64;index;not null" json:"buyer_id"`
	ListingID  ID              `gorm:"type:varchar(36);index;not null" json:"listing_id"`
	OfferPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"offer_price"`
	Currency   string          `gorm:"size:3;default:USD" json:"currency"`
	Status     OfferStatus     `gorm:"size:20;index;default:pending" json:"status"`
}

func (*Offer) TableName() string {
	return "offers"
}
