package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cast"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
)

// CheckoutCmd 结账命令
type CheckoutCmd struct {
	BuyerID        string
	ListingID      string
	PaymentMethod  map[string]any
	ShippingOption model.ShippingOption
	CartID         *string // 预留给购物车，仅透传
}

// CheckoutService 结账编排：快照价格、标记售出、生成托管订单
type CheckoutService struct {
	store    repository.Store
	listings *ListingService
	logger   *zap.Logger
}

func NewCheckoutService(store repository.Store, listings *ListingService, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		store:    store,
		listings: listings,
		logger:   logger,
	}
}

// Checkout 为挂牌生成订单并将挂牌置为 sold
//
// 售出标记是一次条件更新 (active -> sold)，与订单写入同事务。
// 两个并发结账最多只有一个成功，另一个得到 ErrConflict。
func (s *CheckoutService) Checkout(ctx context.Context, cmd CheckoutCmd) (model.ID, error) {
	if !cmd.ShippingOption.Valid() {
		return "", newError(ErrValidation, fmt.Sprintf("unsupported shipping_option %q", cmd.ShippingOption))
	}

	// 1. 加载挂牌
	listing, err := loadListing(ctx, s.store, cmd.ListingID)
	if err != nil {
		return "", err
	}

	// 2. 状态检查，提前失败不开事务
	if !listing.IsPurchasable() {
		return "", errListingNotAvailable
	}

	// 3. 金额快照 + 支付信息转文本
	order := &model.Order{
		BuyerID:        cmd.BuyerID,
		ListingID:      listing.ID,
		CartID:         cmd.CartID,
		Amount:         listing.Price,
		Currency:       listing.SnapshotCurrency(),
		PaymentMethod:  datatypes.NewJSONType(StringifyPaymentMethod(cmd.PaymentMethod)),
		ShippingOption: cmd.ShippingOption,
		Status:         model.OrderStatusCreated,
		EscrowStatus:   model.EscrowHeld,
	}

	// 4. 条件售出 + 写订单
	err = s.store.Transaction(ctx, func(tx repository.Store) error {
		if err := s.listings.MarkSold(ctx, tx, listing.ID); err != nil {
			return err
		}
		if err := tx.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return nil
	})
	if errors.Is(err, ErrConflict) {
		s.logger.Warn("checkout lost race for listing",
			zap.String("listing_id", listing.ID.String()),
			zap.String("buyer_id", cmd.BuyerID),
		)
		return "", err
	}
	if err != nil {
		return "", err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("listing_id", listing.ID.String()),
		zap.String("amount", order.Amount.StringFixed(2)),
		zap.String("currency", order.Currency),
	)
	return order.ID, nil
}

// GetOrder 按 ID 查询订单
func (s *CheckoutService) GetOrder(ctx context.Context, rawID string) (*model.Order, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, errOrderNotFound
	}
	order, err := s.store.Orders().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// StringifyPaymentMethod 把支付信息的每个值转成文本，结构化数据不保留
// nil 转为空串，对象和数组转为 JSON 文本
func StringifyPaymentMethod(in map[string]any) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch v.(type) {
		case nil:
			out[k] = ""
		case map[string]any, []any:
			out[k] = jsonText(v)
		default:
			s, err := cast.ToStringE(v)
			if err != nil {
				s = jsonText(v)
			}
			out[k] = s
		}
	}
	return out
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
