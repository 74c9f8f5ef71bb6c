package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
)

// CreateOfferCmd 出价命令
type CreateOfferCmd struct {
	BuyerID    string
	ListingID  string // 原始 ID，由服务解析
	OfferPrice decimal.Decimal
	Currency   string
}

type OfferService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewOfferService(store repository.Store, logger *zap.Logger) *OfferService {
	return &OfferService{
		store:  store,
		logger: logger,
	}
}

// CreateOffer 对挂牌出价，状态固定为 pending
// 不校验挂牌是否仍在售，非 active 只记录告警
func (s *OfferService) CreateOffer(ctx context.Context, cmd CreateOfferCmd) (model.ID, error) {
	if cmd.OfferPrice.IsNegative() {
		return "", newError(ErrValidation, "offer_price must be greater than or equal to 0")
	}

	listing, err := loadListing(ctx, s.store, cmd.ListingID)
	if err != nil {
		return "", err
	}
	if !listing.IsPurchasable() {
		s.logger.Warn("offer placed on listing that is not active",
			zap.String("listing_id", listing.ID.String()),
			zap.String("status", string(listing.Status)),
		)
	}

	currency := cmd.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}
	offer := &model.Offer{
		BuyerID:    cmd.BuyerID,
		ListingID:  listing.ID,
		OfferPrice: cmd.OfferPrice,
		Currency:   currency,
		Status:     model.OfferStatusPending,
	}
	if err := s.store.Offers().Create(ctx, offer); err != nil {
		return "", fmt.Errorf("create offer: %w", err)
	}

	s.logger.Info("offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.String("listing_id", listing.ID.String()),
	)
	return offer.ID, nil
}

// ListOffers 挂牌下的全部出价，最新在前
func (s *OfferService) ListOffers(ctx context.Context, rawListingID string) ([]model.Offer, error) {
	listing, err := loadListing(ctx, s.store, rawListingID)
	if err != nil {
		return nil, err
	}
	offers, err := s.store.Offers().ListByListing(ctx, listing.ID)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	return offers, nil
}
