package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/service"
)

type OfferController struct {
	offerService *service.OfferService
	log          *zap.Logger
}

func NewOfferController(offerService *service.OfferService, log *zap.Logger) *OfferController {
	return &OfferController{offerService: offerService, log: log}
}

// CreateOffer 出价
// @Summary 对挂牌出价
// @Tags Offer
// @Param body body dto.CreateOfferReq true "出价信息"
// @Success 200 {object} dto.CreateOfferResp
// @Failure 404 {object} map[string]string
// @Router /offers [post]
func (ctrl *OfferController) CreateOffer(c *gin.Context) {
	var req dto.CreateOfferReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	offerID, err := ctrl.offerService.CreateOffer(c.Request.Context(), service.CreateOfferCmd{
		BuyerID:    req.BuyerID,
		ListingID:  req.ListingID,
		OfferPrice: decimal.NewFromFloat(*req.OfferPrice),
		Currency:   req.Currency,
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateOfferResp{
		Status:  "offer_created",
		OfferID: offerID.String(),
	})
}
