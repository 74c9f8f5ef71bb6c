package dto

import (
	"time"

	"gorm.io/datatypes"

	"sneaksync/internal/model"
)

// ==================== Request ====================

// ProductQuery GET /products 查询参数
// 分页参数用指针区分“未传”和“传了 0”
type ProductQuery struct {
	Q         string `form:"q"`
	Brand     string `form:"brand"`
	Size      string `form:"size"`
	Condition string `form:"condition" binding:"omitempty,oneof=new used like_new open_box"`
	Page      *int   `form:"page" binding:"omitempty,min=1"`
	PerPage   *int   `form:"per_page" binding:"omitempty,min=1,max=100"`
}

type SizeVariantReq struct {
	Size              string  `json:"size" binding:"required"`
	SKU               string  `json:"sku" binding:"required"`
	Price             float64 `json:"price" binding:"gte=0"`
	Currency          string  `json:"currency" binding:"required,currency"`
	InventoryQuantity int     `json:"inventory_quantity" binding:"gte=0"`
}

type DimensionsReq struct {
	Length int `json:"length" binding:"gte=0"`
	Width  int `json:"width" binding:"gte=0"`
	Height int `json:"height" binding:"gte=0"`
}

// ProductReq 挂牌请求中携带的商品
type ProductReq struct {
	Title                   string           `json:"title" binding:"required"`
	Slug                    string           `json:"slug"` // 为空时不做去重
	Brand                   string           `json:"brand" binding:"required"`
	Model                   string           `json:"model" binding:"required"`
	ReleaseYear             int              `json:"release_year" binding:"gte=0"`
	Condition               string           `json:"condition" binding:"required,oneof=new used like_new open_box"`
	SizeVariants            []SizeVariantReq `json:"size_variants" binding:"dive"`
	Images                  []string         `json:"images" binding:"dive,url"`
	GalleryVideo            *string          `json:"gallery_video" binding:"omitempty,url"`
	Description             string           `json:"description"`
	Materials               *string          `json:"materials"`
	Colorway                *string          `json:"colorway"`
	Tags                    []string         `json:"tags"`
	AuthenticityCertificate bool             `json:"authenticity_certificate"`
	SellerID                string           `json:"seller_id"`
	ShippingWeightGrams     int              `json:"shipping_weight_grams" binding:"gte=0"`
	DimensionsMM            DimensionsReq    `json:"dimensions_mm"`
}

// ToModel 转为商品文档
func (r ProductReq) ToModel() model.Product {
	variants := make([]model.SizeVariant, 0, len(r.SizeVariants))
	for _, v := range r.SizeVariants {
		variants = append(variants, model.SizeVariant{
			Size:              v.Size,
			SKU:               v.SKU,
			Price:             v.Price,
			Currency:          v.Currency,
			InventoryQuantity: v.InventoryQuantity,
		})
	}

	p := model.Product{
		Title:                   r.Title,
		Brand:                   r.Brand,
		Model:                   r.Model,
		ReleaseYear:             r.ReleaseYear,
		Condition:               model.ProductCondition(r.Condition),
		SizeVariants:            datatypes.NewJSONType(variants),
		Images:                  datatypes.NewJSONType(nonNil(r.Images)),
		GalleryVideo:            r.GalleryVideo,
		Description:             r.Description,
		Materials:               r.Materials,
		Colorway:                r.Colorway,
		Tags:                    datatypes.NewJSONType(nonNil(r.Tags)),
		AuthenticityCertificate: r.AuthenticityCertificate,
		SellerID:                r.SellerID,
		ShippingWeightGrams:     r.ShippingWeightGrams,
		DimensionsMM: datatypes.NewJSONType(model.Dimensions{
			Length: r.DimensionsMM.Length,
			Width:  r.DimensionsMM.Width,
			Height: r.DimensionsMM.Height,
		}),
	}
	if r.Slug != "" {
		slug := r.Slug
		p.Slug = &slug
	}
	return p
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ==================== Response ====================

// ProductResp 商品文档
type ProductResp struct {
	ID                      string              `json:"id"`
	Title                   string              `json:"title"`
	Slug                    *string             `json:"slug"`
	Brand                   string              `json:"brand"`
	Model                   string              `json:"model"`
	ReleaseYear             int                 `json:"release_year"`
	Condition               string              `json:"condition"`
	SizeVariants            []model.SizeVariant `json:"size_variants"`
	Images                  []string            `json:"images"`
	GalleryVideo            *string             `json:"gallery_video"`
	Description             string              `json:"description"`
	Materials               *string             `json:"materials"`
	Colorway                *string             `json:"colorway"`
	Tags                    []string            `json:"tags"`
	AuthenticityCertificate bool                `json:"authenticity_certificate"`
	SellerID                string              `json:"seller_id"`
	ShippingWeightGrams     int                 `json:"shipping_weight_grams"`
	DimensionsMM            model.Dimensions    `json:"dimensions_mm"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}

// ProductPageResp 商品分页
type ProductPageResp struct {
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
	Items   []ProductResp `json:"items"`
}

func NewProductResp(p *model.Product) ProductResp {
	variants := p.SizeVariants.Data()
	if variants == nil {
		variants = []model.SizeVariant{}
	}
	return ProductResp{
		ID:                      p.ID.String(),
		Title:                   p.Title,
		Slug:                    p.Slug,
		Brand:                   p.Brand,
		Model:                   p.Model,
		ReleaseYear:             p.ReleaseYear,
		Condition:               string(p.Condition),
		SizeVariants:            variants,
		Images:                  nonNil(p.Images.Data()),
		GalleryVideo:            p.GalleryVideo,
		Description:             p.Description,
		Materials:               p.Materials,
		Colorway:                p.Colorway,
		Tags:                    nonNil(p.Tags.Data()),
		AuthenticityCertificate: p.AuthenticityCertificate,
		SellerID:                p.SellerID,
		ShippingWeightGrams:     p.ShippingWeightGrams,
		DimensionsMM:            p.DimensionsMM.Data(),
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func NewProductPageResp(total int64, page, perPage int, items []model.Product) ProductPageResp {
	resp := ProductPageResp{
		Total:   total,
		Page:    page,
		PerPage: perPage,
		Items:   make([]ProductResp, 0, len(items)),
	}
	for i := range items {
		resp.Items = append(resp.Items, NewProductResp(&items[i]))
	}
	return resp
}
