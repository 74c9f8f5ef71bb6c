package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"sneaksync/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	// Create 插入商品；slug 已存在时不写入并返回 ErrDuplicate
	Create(ctx context.Context, product *model.Product) error
	GetByID(ctx context.Context, id model.ID) (*model.Product, error)
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int64, error)
}

// ==================== 过滤条件 ====================

// ProductFilter 商品过滤条件
type ProductFilter struct {
	Keyword   string // 标题 / 品牌 / 型号 模糊匹配
	Brand     string // 忽略大小写精确匹配
	Size      string // 任一尺码规格匹配
	Condition model.ProductCondition
	Page      int
	PerPage   int
}

// Offset 分页偏移
func (f ProductFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit 每页数量，默认 12
func (f ProductFilter) Limit() int {
	if f.PerPage <= 0 {
		return 12
	}
	return f.PerPage
}

// ==================== 仓储实现 ====================

type productRepo struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	if !product.HasSlug() {
		product.Slug = nil
		return translate(r.db.WithContext(ctx).Create(product).Error)
	}

	// 不能依赖唯一索引报错：Postgres 事务内报错后整个事务不可用
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoNothing: true,
		}).
		Create(product)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id model.ID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	var products []model.Product
	err := r.filtered(ctx, filter).
		Order("created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&products).Error
	return products, translate(err)
}

func (r *productRepo) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	var total int64
	err := r.filtered(ctx, filter).Count(&total).Error
	return total, translate(err)
}

// filtered 构建过滤条件
func (r *productRepo) filtered(ctx context.Context, filter ProductFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Keyword != "" {
		pattern := "%" + escapeLike(strings.ToLower(filter.Keyword)) + "%"
		query = query.Where(
			`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(brand) LIKE ? ESCAPE '\' OR LOWER(model) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(filter.Brand))
	}
	if filter.Condition != "" {
		query = query.Where("condition = ?", filter.Condition)
	}
	if filter.Size != "" {
		query = query.Where(r.sizeClause(), filter.Size)
	}
	return query
}

// sizeClause 按方言匹配 JSON 数组中任一元素的 size
func (r *productRepo) sizeClause() string {
	switch r.db.Dialector.Name() {
	case "postgres":
		return `EXISTS (SELECT 1 FROM jsonb_array_elements(size_variants::jsonb) AS v WHERE v->>'size' = ?)`
	default:
		return `EXISTS (SELECT 1 FROM json_each(size_variants) WHERE json_extract(json_each.value, '$.size') = ?)`
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
