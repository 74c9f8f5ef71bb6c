package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sneaksync/internal/api/dto"
	"sneaksync/internal/repository"
	"sneaksync/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 请求构造辅助 ====================

func performRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// ==================== 测试环境 ====================

type testEnv struct {
	router *gin.Engine
	store  repository.Store
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, repository.AutoMigrate(context.Background(), db))
	return db
}

// setupEnv 真实 service + sqlite，路由与生产一致（不含中间件）
func setupEnv(t *testing.T) *testEnv {
	require.NoError(t, dto.RegisterValidators())

	store := repository.NewStore(setupTestDB(t))
	log := zap.NewNop()

	listingSvc := service.NewListingService(store, log)
	offerSvc := service.NewOfferService(store, log)
	checkoutSvc := service.NewCheckoutService(store, listingSvc, log)
	healthSvc := service.NewHealthService(store, "postgres://test", "", log)

	health := NewHealthController(healthSvc)
	products := NewProductController(service.NewProductService(store), log)
	listings := NewListingController(listingSvc, offerSvc, log)
	offers := NewOfferController(offerSvc, log)
	orders := NewOrderController(checkoutSvc, log)

	r := gin.New()
	r.GET("/", health.Root)
	r.GET("/test", health.Test)
	r.GET("/products", products.ListProducts)
	r.POST("/listings", listings.CreateListing)
	r.GET("/listings/:id", listings.GetListing)
	r.GET("/listings/:id/offers", listings.ListOffers)
	r.POST("/offers", offers.CreateOffer)
	r.POST("/checkout", orders.Checkout)
	r.GET("/orders/:id", orders.GetOrder)

	return &testEnv{router: r, store: store}
}

func listingBody(slug string, price float64) map[string]interface{} {
	return map[string]interface{}{
		"seller_id":    "seller-1",
		"price":        price,
		"listing_type": "fixed_price",
		"product": map[string]interface{}{
			"title":     "Air Jordan 1 Chicago",
			"slug":      slug,
			"brand":     "Jordan",
			"model":     "AJ1",
			"condition": "new",
			"size_variants": []map[string]interface{}{
				{"size": "10", "sku": "AJ1-10", "price": 300, "currency": "USD", "inventory_quantity": 1},
			},
			"images":        []string{"https://img.example.com/aj1.jpg"},
			"dimensions_mm": map[string]int{"length": 330, "width": 210, "height": 120},
		},
	}
}

// createListing 通过接口创建挂牌，返回 listing_id
func (env *testEnv) createListing(t *testing.T, slug string, price float64) string {
	w := performRequest(env.router, "POST", "/listings", listingBody(slug, price))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["listing_id"].(string)
}
