package dto

import (
	"time"

	"sneaksync/internal/model"
)

// CreateOfferReq POST /offers
// listing_id 不在这里校验格式，非法 ID 按 404 处理
type CreateOfferReq struct {
	BuyerID    string   `json:"buyer_id" binding:"required"`
	ListingID  string   `json:"listing_id" binding:"required"`
	OfferPrice *float64 `json:"offer_price" binding:"required,gte=0"`
	Currency   string   `json:"currency" binding:"omitempty,currency"`
}

type CreateOfferResp struct {
	Status  string `json:"status"`
	OfferID string `json:"offer_id"`
}

type OfferResp struct {
	ID         string    `json:"id"`
	BuyerID    string    `json:"buyer_id"`
	ListingID  string    `json:"listing_id"`
	OfferPrice float64   `json:"offer_price"`
	Currency   string    `json:"currency"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListingOffersResp GET /listings/:id/offers
type ListingOffersResp struct {
	ListingID string      `json:"listing_id"`
	Items     []OfferResp `json:"items"`
}

func NewOfferResp(o *model.Offer) OfferResp {
	return OfferResp{
		ID:         o.ID.String(),
		BuyerID:    o.BuyerID,
		ListingID:  o.ListingID.String(),
		OfferPrice: o.OfferPrice.InexactFloat64(),
		Currency:   o.Currency,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

func NewListingOffersResp(listingID string, offers []model.Offer) ListingOffersResp {
	resp := ListingOffersResp{
		ListingID: listingID,
		Items:     make([]OfferResp, 0, len(offers)),
	}
	for i := range offers {
		resp.Items = append(resp.Items, NewOfferResp(&offers[i]))
	}
	return resp
}
