package controller

import (
	"net/http"
	"school_backend/internal/util"
	"school_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// @Summary 健康检查
// @Description 检查服务与数据库状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	// 检查数据库连接
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	if err := sqlDB.PingContext(ctx.Request.Context()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database unavailable", nil)
		return
	}

	stats := sqlDB.Stats()
	util.Success(ctx, gin.H{
		"status":   "ok",
		"logLevel": logger.Level().String(),
		"components": gin.H{
			"database": gin.H{
				"status":          "up",
				"dialect":         c.DB.Dialector.Name(),
				"openConnections": stats.OpenConnections,
			},
		},
	})
}
