package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sneaksync/internal/model"
	"sneaksync/internal/repository"
)

const (
	DefaultPerPage = 12
	MaxPerPage     = 100
)

// ProductPage 商品分页结果
type ProductPage struct {
	Total   int64
	Page    int
	PerPage int
	Items   []model.Product
}

// ProductService 商品目录查询
type ProductService struct {
	store repository.Store
}

func NewProductService(store repository.Store) *ProductService {
	return &ProductService{store: store}
}

// Search 按条件分页检索商品，总数与当前页并发查询
func (s *ProductService) Search(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page == 0 {
		filter.Page = 1
	}
	if filter.PerPage == 0 {
		filter.PerPage = DefaultPerPage
	}
	if filter.Page < 1 {
		return nil, newError(ErrValidation, "page must be greater than or equal to 1")
	}
	if filter.PerPage < 1 || filter.PerPage > MaxPerPage {
		return nil, newError(ErrValidation, fmt.Sprintf("per_page must be between 1 and %d", MaxPerPage))
	}
	if filter.Condition != "" && !filter.Condition.Valid() {
		return nil, newError(ErrValidation, fmt.Sprintf("unsupported condition %q", filter.Condition))
	}

	page := &ProductPage{Page: filter.Page, PerPage: filter.PerPage}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.store.Products().Count(gctx, filter)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		page.Total = total
		return nil
	})
	g.Go(func() error {
		items, err := s.store.Products().List(gctx, filter)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		page.Items = items
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.Items == nil {
		page.Items = []model.Product{}
	}
	return page, nil
}
