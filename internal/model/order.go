package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusRefunded  OrderStatus = "refunded"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// EscrowStatus 托管状态，目前只使用 held
type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "held"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

// ShippingOption 配送方式
type ShippingOption string

const (
	ShippingStandard    ShippingOption = "standard"
	ShippingExpress     ShippingOption = "express"
	ShippingStorePickup ShippingOption = "store_pickup"
	ShippingDropship    ShippingOption = "dropship"
)

// Valid 是否为支持的配送方式
func (o ShippingOption) Valid() bool {
	switch o {
	case ShippingStandard, ShippingExpress, ShippingStorePickup, ShippingDropship:
		return true
	}
	return false
}

// ==================== Order 订单 ====================

// Order 托管订单 (集合: orders)
// 创建后只有 Status / EscrowStatus 可变，金额与币种是下单时挂牌的快照
type Order struct {
	BaseModel

	BuyerID   string  `gorm:"size:64;index;not null" json:"buyer_id"`
	ListingID ID      `gorm:"type:varchar(36);index;not null" json:"listing_id"`
	CartID    *string `gorm:"size:64" json:"cart_id,omitempty"`

	// 金额快照
	Amount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Currency string          `gorm:"size:3;default:USD" json:"currency"`

	// 支付信息只保存文本
	PaymentMethod  datatypes.JSONType[map[string]string] `json:"payment_method"`
	ShippingOption ShippingOption                        `gorm:"size:20;not null" json:"shipping_option"`

	Status       OrderStatus  `gorm:"size:20;index;default:created" json:"status"`
	EscrowStatus EscrowStatus `gorm:"size:20;default:held" json:"escrow_status"`
}

func (*Order) TableName() string {
	return "orders"
}
