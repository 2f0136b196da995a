package handler

import (
	"github.com/gin-gonic/gin"

	appsale "github.com/xiebiao/bookshop/internal/application/sale"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// SaleHandler 销售HTTP处理器
type SaleHandler struct {
	createSaleUseCase *appsale.CreateSaleUseCase
	listSalesUseCase  *appsale.ListSalesUseCase
}

// NewSaleHandler 创建销售处理器
func NewSaleHandler(
	createSaleUseCase *appsale.CreateSaleUseCase,
	listSalesUseCase *appsale.ListSalesUseCase,
) *SaleHandler {
	return &SaleHandler{
		createSaleUseCase: createSaleUseCase,
		listSalesUseCase:  listSalesUseCase,
	}
}

// CreateSale 售书
// @Summary      售书
// @Description  一笔交易卖出多本图书,扣库存与记账原子完成
// @Tags         销售
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateSaleRequest true "交易信息"
// @Success      200 {object} response.Response{data=appsale.CreateSaleResponse}
// @Failure      400 {object} response.Response "参数错误或库存不足"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/sales [post]
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	items := make([]appsale.CreateSaleItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = appsale.CreateSaleItem{BookID: item.BookID, Quantity: item.Quantity}
	}

	result, err := h.createSaleUseCase.Execute(c.Request.Context(), appsale.CreateSaleRequest{
		CustomerName: req.CustomerName,
		PhoneNumber:  req.PhoneNumber,
		Items:        items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListSales 销售台账
// @Summary      销售台账
// @Description  按交易分组的全部销售记录,最新的在前
// @Tags         销售
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appsale.ListSalesResponse}
// @Router       /api/v1/sales [get]
func (h *SaleHandler) ListSales(c *gin.Context) {
	result, err := h.listSalesUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
