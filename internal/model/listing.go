package model

import (
	"github.com/shopspring/decimal"
)

// ListingType 挂牌方式
type ListingType string

const (
	ListingTypeFixedPrice ListingType = "fixed_price"
	ListingTypeAuction    ListingType = "auction"
	ListingTypeMakeOffer  ListingType = "make_offer"
)

func (t ListingType) Valid() bool {
	switch t {
	case ListingTypeFixedPrice, ListingTypeAuction, ListingTypeMakeOffer:
		return true
	}
	return false
}

// ListingStatus 挂牌状态
// active -> sold 只能由结账触发
type ListingStatus string

const (
	ListingStatusActive ListingStatus = "active"
	ListingStatusSold   ListingStatus = "sold"
	ListingStatusPaused ListingStatus = "paused"
	ListingStatusEnded  ListingStatus = "ended"
)

// Listing 在售挂牌 (集合: listings)
type Listing struct {
	BaseModel

	SellerID    string          `gorm:"size:64;index;not null" json:"seller_id"`
	ProductID   ID              `gorm:"type:varchar(36);index;not null" json:"product_id"` // 弱引用
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ListingType ListingType     `gorm:"size:20;not null" json:"listing_type"`
	Currency    string          `gorm:"size:3;default:USD" json:"currency"`
	Status      ListingStatus   `gorm:"size:20;index;default:active" json:"status"`
}

func (*Listing) TableName() string {
	return "listings"
}

// IsPurchasable 状态为空（历史数据）或 active 时可购买
func (l *Listing) IsPurchasable() bool {
	return l.Status == "" || l.Status == ListingStatusActive
}

// SnapshotCurrency 下单时使用的币种
func (l *Listing) SnapshotCurrency() string {
	if l.Currency == "" {
		return DefaultCurrency
	}
	return l.Currency
}
