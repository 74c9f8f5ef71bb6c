package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/model"
	"sneaksync/internal/service"
)

type ListingController struct {
	listingService *service.ListingService
	offerService   *service.OfferService
	log            *zap.Logger
}

func NewListingController(listingService *service.ListingService, offerService *service.OfferService, log *zap.Logger) *ListingController {
	return &ListingController{
		listingService: listingService,
		offerService:   offerService,
		log:            log,
	}
}

// CreateListing 创建挂牌
// @Summary 创建挂牌（按 slug 复用商品）
// @Tags Listing
// @Param body body dto.CreateListingReq true "挂牌信息"
// @Success 200 {object} dto.CreateListingResp
// @Failure 422 {object} map[string]string
// @Router /listings [post]
func (ctrl *ListingController) CreateListing(c *gin.Context) {
	var req dto.CreateListingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	created, err := ctrl.listingService.CreateListing(c.Request.Context(), service.CreateListingCmd{
		SellerID:    req.SellerID,
		Product:     req.Product.ToModel(),
		Price:       decimal.NewFromFloat(*req.Price),
		ListingType: model.ListingType(req.ListingType),
		Currency:    req.Currency,
	})
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateListingResp{
		Status:    "listing_created",
		ListingID: created.ListingID.String(),
		ProductID: created.ProductID.String(),
	})
}

// GetListing 挂牌详情
// @Summary 挂牌详情
// @Tags Listing
// @Param id path string true "挂牌 ID"
// @Success 200 {object} dto.ListingResp
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (ctrl *ListingController) GetListing(c *gin.Context) {
	listing, err := ctrl.listingService.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingResp(listing))
}

// ListOffers 挂牌下的出价
// @Summary 挂牌下的出价，最新在前
// @Tags Listing
// @Param id path string true "挂牌 ID"
// @Success 200 {object} dto.ListingOffersResp
// @Failure 404 {object} map[string]string
// @Router /listings/{id}/offers [get]
func (ctrl *ListingController) ListOffers(c *gin.Context) {
	listingID := c.Param("id")
	offers, err := ctrl.offerService.ListOffers(c.Request.Context(), listingID)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewListingOffersResp(listingID, offers))
}
