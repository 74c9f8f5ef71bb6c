package dto

import (
	"time"

	"sneaksync/internal/model"
)

// CheckoutReq POST /checkout
type CheckoutReq struct {
	CartID         *string        `json:"cart_id"` // 预留
	ListingID      string         `json:"listing_id" binding:"required"`
	BuyerID        string         `json:"buyer_id" binding:"required"`
	PaymentMethod  map[string]any `json:"payment_method" binding:"required"`
	ShippingOption string         `json:"shipping_option" binding:"required,oneof=standard express store_pickup dropship"`
}

type CheckoutResp struct {
	Status  string `json:"status"`
	OrderID string `json:"order_id"`
}

// OrderResp 订单文档
type OrderResp struct {
	ID             string            `json:"id"`
	BuyerID        string            `json:"buyer_id"`
	ListingID      string            `json:"listing_id"`
	CartID         *string           `json:"cart_id"`
	Amount         float64           `json:"amount"`
	Currency       string            `json:"currency"`
	PaymentMethod  map[string]string `json:"payment_method"`
	ShippingOption string            `json:"shipping_option"`
	Status         string            `json:"status"`
	EscrowStatus   string            `json:"escrow_status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func NewOrderResp(o *model.Order) OrderResp {
	payment := o.PaymentMethod.Data()
	if payment == nil {
		payment = map[string]string{}
	}
	return OrderResp{
		ID:             o.ID.String(),
		BuyerID:        o.BuyerID,
		ListingID:      o.ListingID.String(),
		CartID:         o.CartID,
		Amount:         o.Amount.InexactFloat64(),
		Currency:       o.Currency,
		PaymentMethod:  payment,
		ShippingOption: string(o.ShippingOption),
		Status:         string(o.Status),
		EscrowStatus:   string(o.EscrowStatus),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
