package handler

import (
	"github.com/gin-gonic/gin"

	appdashboard "github.com/xiebiao/bookshop/internal/application/dashboard"
	"github.com/xiebiao/bookshop/pkg/response"
)

// DashboardHandler 看板HTTP处理器
type DashboardHandler struct {
	statsUseCase *appdashboard.StatsUseCase
}

// NewDashboardHandler 创建看板处理器
func NewDashboardHandler(statsUseCase *appdashboard.StatsUseCase) *DashboardHandler {
	return &DashboardHandler{statsUseCase: statsUseCase}
}

// Stats 店面看板
// @Summary      店面看板
// @Description  在册图书种类数、累计销售额、低库存图书数
// @Tags         看板
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appdashboard.StatsResponse}
// @Router       /api/v1/dashboard [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	result, err := h.statsUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
