package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
)

// HealthHandler 健康检查处理器
// 探测数据库与Redis,任一不可用时返回503(供负载均衡摘除实例)
type HealthHandler struct {
	pool        *mysql.ConnPool
	redisClient *redis.Client
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(pool *mysql.ConnPool, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{pool: pool, redisClient: redisClient}
}

// Check 健康检查
// @Summary      健康检查
// @Description  探测数据库与Redis连通性
// @Tags         系统
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      503 {object} map[string]interface{}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	if err := h.pool.Ping(ctx); err != nil {
		dbStatus = "unavailable"
	}

	redisStatus := "ok"
	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		redisStatus = "unavailable"
	}

	status := http.StatusOK
	healthy := dbStatus == "ok" && redisStatus == "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	stats := h.pool.Stats()
	c.JSON(status, gin.H{
		"healthy": healthy,
		"time":    time.Now().Format(time.DateTime),
		"database": gin.H{
			"status":    dbStatus,
			"pool_size": h.pool.Size(),
			"in_use":    stats.InUse,
			"idle":      stats.Idle,
		},
		"redis": gin.H{
			"status": redisStatus,
		},
	})
}
