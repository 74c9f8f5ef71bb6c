package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sneaksync/internal/service"
)

type HealthController struct {
	healthService *service.HealthService
}

func NewHealthController(healthService *service.HealthService) *HealthController {
	return &HealthController{healthService: healthService}
}

// Root 存活检查
// @Summary 存活检查
// @Tags Health
// @Success 200 {object} map[string]string
// @Router / [get]
func (ctrl *HealthController) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SneakSync Marketplace API is running"})
}

// Test 数据库诊断
// @Summary 数据库连通性与集合列表
// @Tags Health
// @Success 200 {object} service.Diagnostic
// @Router /test [get]
func (ctrl *HealthController) Test(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.healthService.Diagnose(c.Request.Context()))
}
