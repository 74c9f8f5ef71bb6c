package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/model"
	"sneaksync/internal/service"
)

type OrderController struct {
	checkoutService *service.CheckoutService
	log             *zap.Logger
}

func NewOrderController(checkoutService *service.CheckoutService, log *zap.Logger) *OrderController {
	return &OrderController{checkoutService: checkoutService, log: log}
}

// Checkout 结账
// @Summary 结账：快照价格，生成托管订单并将挂牌置为 sold
// @Tags Order
// @Param body body dto.CheckoutReq true "结账信息"
// @Success 200 {object} dto.CheckoutResp
// @Failure 400 {object} map[string]string "挂牌不可购买"
// @Failure 404 {object} map[string]string "挂牌不存在"
// @Failure 409 {object} map[string]string "并发结账失败"
// @Router /checkout [post]
func (ctrl *OrderController) Checkout(c *gin.Context) {
	var req dto.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	orderID, err := ctrl.checkoutService.Checkout(c.Request.Context(), service.CheckoutCmd{
		BuyerID:        req.BuyerID,
		ListingID:      req.ListingID,
		PaymentMethod:  req.PaymentMethod,
		ShippingOption: model.ShippingOption(req.ShippingOption),
		CartID:         req.CartID,
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckoutResp{
		Status:  "order_confirmation",
		OrderID: orderID.String(),
	})
}

// GetOrder 订单详情
// @Summary 订单详情
// @Tags Order
// @Param id path string true "订单 ID"
// @Success 200 {object} dto.OrderResp
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	order, err := ctrl.checkoutService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResp(order))
}
