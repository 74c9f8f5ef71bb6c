package model

import (
	"gorm.io/datatypes"
)

// ProductCondition 商品成色
type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionUsed    ProductCondition = "used"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionOpenBox ProductCondition = "open_box"
)

func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionLikeNew, ConditionOpenBox:
		return true
	}
	return false
}

// SizeVariant 尺码规格
type SizeVariant struct {
	Size              string  `json:"size"`
	SKU               string  `json:"sku"`
	Price             float64 `json:"price"`
	Currency          string  `json:"currency"`
	InventoryQuantity int     `json:"inventory_quantity"`
}

// Dimensions 包装尺寸（毫米）
type Dimensions struct {
	Length int `json:"length"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Product 商品主数据 (集合: products)
type Product struct {
	BaseModel

	Title       string           `gorm:"size:255;not null;comment:标题" json:"title"`
	Slug        *string          `gorm:"size:255;uniqueIndex;comment:业务唯一键" json:"slug,omitempty"`
	Brand       string           `gorm:"size:128;index;comment:品牌" json:"brand"`
	Model       string           `gorm:"size:128;comment:型号" json:"model"`
	ReleaseYear int              `json:"release_year"`
	Condition   ProductCondition `gorm:"size:20;index" json:"condition"`

	// 嵌套文档 (PostgreSQL JSONB)
	SizeVariants datatypes.JSONType[[]SizeVariant] `json:"size_variants"`
	Images       datatypes.JSONType[[]string]      `json:"images"`
	GalleryVideo *string                           `gorm:"size:512" json:"gallery_video,omitempty"`

	Description string                       `gorm:"type:text" json:"description"`
	Materials   *string                      `gorm:"size:255" json:"materials,omitempty"`
	Colorway    *string                      `gorm:"size:255" json:"colorway,omitempty"`
	Tags        datatypes.JSONType[[]string] `json:"tags"`

	AuthenticityCertificate bool   `gorm:"default:false" json:"authenticity_certificate"`
	SellerID                string `gorm:"size:64;index" json:"seller_id"`

	// 物流属性
	ShippingWeightGrams int                            `json:"shipping_weight_grams"`
	DimensionsMM        datatypes.JSONType[Dimensions] `gorm:"column:dimensions_mm" json:"dimensions_mm"`
}

func (*Product) TableName() string {
	return "products"
}

// HasSlug 是否带业务唯一键
func (p *Product) HasSlug() bool {
	return p.Slug != nil && *p.Slug != ""
}
