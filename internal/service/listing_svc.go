package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
)

// CreateListingCmd 创建挂牌命令
type CreateListingCmd struct {
	SellerID    string
	Product     model.Product
	Price       decimal.Decimal
	ListingType model.ListingType
	Currency    string // 为空时使用 USD
}

// ListingCreated 创建结果
type ListingCreated struct {
	ListingID model.ID
	ProductID model.ID
}

// ListingService 挂牌生命周期
type ListingService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewListingService(store repository.Store, logger *zap.Logger) *ListingService {
	return &ListingService{
		store:  store,
		logger: logger,
	}
}

// CreateListing 按 slug 复用或新建商品，然后创建 active 挂牌
func (s *ListingService) CreateListing(ctx context.Context, cmd CreateListingCmd) (*ListingCreated, error) {
	// 1. 参数校验
	if cmd.Price.IsNegative() {
		return nil, newError(ErrValidation, "price must be greater than or equal to 0")
	}
	if !cmd.ListingType.Valid() {
		return nil, newError(ErrValidation, fmt.Sprintf("unsupported listing_type %q", cmd.ListingType))
	}
	currency := cmd.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}
	if cmd.Product.SellerID == "" {
		cmd.Product.SellerID = cmd.SellerID
	}

	// 2. 商品 upsert + 挂牌写入在同一事务
	var created ListingCreated
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		productID, err := resolveProduct(ctx, tx, &cmd.Product)
		if err != nil {
			return err
		}

		listing := &model.Listing{
			SellerID:    cmd.SellerID,
			ProductID:   productID,
			Price:       cmd.Price,
			ListingType: cmd.ListingType,
			Currency:    currency,
			Status:      model.ListingStatusActive,
		}
		if err := tx.Listings().Create(ctx, listing); err != nil {
			return fmt.Errorf("create listing: %w", err)
		}

		created = ListingCreated{ListingID: listing.ID, ProductID: productID}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("listing created",
		zap.String("listing_id", created.ListingID.String()),
		zap.String("product_id", created.ProductID.String()),
		zap.String("seller_id", cmd.SellerID),
	)
	return &created, nil
}

// resolveProduct 返回 slug 对应的已有商品 ID，不存在则插入新商品
func resolveProduct(ctx context.Context, tx repository.Store, product *model.Product) (model.ID, error) {
	if product.HasSlug() {
		existing, err := tx.Products().GetBySlug(ctx, *product.Slug)
		if err == nil {
			return existing.ID, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("find product by slug: %w", err)
		}
	}

	// ID 一律由存储层生成
	product.ID = ""
	err := tx.Products().Create(ctx, product)
	if errors.Is(err, repository.ErrDuplicate) {
		// 并发的首次写入抢先落库，复用胜出者
		winner, err := tx.Products().GetBySlug(ctx, *product.Slug)
		if err != nil {
			return "", fmt.Errorf("reload product by slug: %w", err)
		}
		return winner.ID, nil
	}
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}
	return product.ID, nil
}

// MarkSold 只由结账流程调用，tx 为结账事务
// 条件更新没有改到任何行说明挂牌已被别的结账抢先售出
func (s *ListingService) MarkSold(ctx context.Context, tx repository.Store, listingID model.ID) error {
	changed, err := tx.Listings().MarkSold(ctx, listingID)
	if err != nil {
		return fmt.Errorf("mark listing sold: %w", err)
	}
	if !changed {
		return errListingAlreadySold
	}
	return nil
}

// GetListing 按 ID 查询挂牌
func (s *ListingService) GetListing(ctx context.Context, rawID string) (*model.Listing, error) {
	return loadListing(ctx, s.store, rawID)
}

// loadListing 解析并加载挂牌，非法 ID 与不存在同样视为 NotFound
func loadListing(ctx context.Context, store repository.Store, rawID string) (*model.Listing, error) {
	id, err := model.ParseID(rawID)
	if err != nil {
		return nil, errListingNotFound
	}
	listing, err := store.Listings().GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, errListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return listing, nil
}
