package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sneaksync/internal/controller"
	"sneaksync/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Health  *controller.HealthController
	Product *controller.ProductController
	Listing *controller.ListingController
	Offer   *controller.OfferController
	Order   *controller.OrderController
}

// Options 路由级中间件依赖
type Options struct {
	Logger  *zap.Logger
	Store   middleware.StoreChecker
	Limiter *middleware.IPRateLimiter
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctl *Controllers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		middleware.Recovery(opts.Logger),
		cors.New(corsConfig()),
	)

	InitRoutes(r, ctl, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, opts Options) {
	// 1. 诊断路由，不依赖存储
	r.GET("/", ctl.Health.Root)
	r.GET("/test", ctl.Health.Test)

	// 2. 数据路由，存储不可用时 503
	data := r.Group("", middleware.RequireStore(opts.Store))
	write := middleware.WriteRateLimit(opts.Limiter)
	{
		// GET /products
		data.GET("/products", ctl.Product.ListProducts)

		// listing 挂牌
		listings := data.Group("/listings")
		{
			listings.POST("", write, ctl.Listing.CreateListing)
			listings.GET("/:id", ctl.Listing.GetListing)
			listings.GET("/:id/offers", ctl.Listing.ListOffers)
		}

		// POST /offers
		data.POST("/offers", write, ctl.Offer.CreateOffer)

		// checkout / order
		data.POST("/checkout", write, ctl.Order.Checkout)
		data.GET("/orders/:id", ctl.Order.GetOrder)
	}
}

// corsConfig 允许任意来源
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowHeaders = []string{"*"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.ExposeHeaders = []string{middleware.HeaderRequestID, "Retry-After"}
	return cfg
}
