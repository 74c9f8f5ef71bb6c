package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/model"
	"sneaksync/internal/repository"
	"sneaksync/internal/service"
)

type ProductController struct {
	productService *service.ProductService
	log            *zap.Logger
}

func NewProductController(productService *service.ProductService, log *zap.Logger) *ProductController {
	return &ProductController{productService: productService, log: log}
}

// ==================== 查询接口 ====================

// ListProducts 商品检索
// @Summary 按关键字 / 品牌 / 尺码 / 成色检索商品
// @Tags Product
// @Param q query string false "标题 / 品牌 / 型号模糊搜索"
// @Param brand query string false "品牌（忽略大小写）"
// @Param size query string false "尺码"
// @Param condition query string false "成色" Enums(new, used, like_new, open_box)
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(12)
// @Success 200 {object} dto.ProductPageResp
// @Failure 422 {object} map[string]string
// @Router /products [get]
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	var query dto.ProductQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	filter := repository.ProductFilter{
		Keyword:   query.Q,
		Brand:     query.Brand,
		Size:      query.Size,
		Condition: model.ProductCondition(query.Condition),
		Page:      1,
		PerPage:   service.DefaultPerPage,
	}
	if query.Page != nil {
		filter.Page = *query.Page
	}
	if query.PerPage != nil {
		filter.PerPage = *query.PerPage
	}

	page, err := ctrl.productService.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewProductPageResp(page.Total, page.Page, page.PerPage, page.Items))
}
