package dashboard

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/sale"
)

// LowStockThreshold 低库存告警线:在库数量低于10本的图书需要补货
const LowStockThreshold = 10

// StatsUseCase 店面看板统计用例
// 三个指标各自独立查询,任何一个失败整体报错(看板宁缺毋假)
type StatsUseCase struct {
	bookRepo book.Repository
	saleRepo sale.Repository
}

// NewStatsUseCase 创建看板统计用例
func NewStatsUseCase(bookRepo book.Repository, saleRepo sale.Repository) *StatsUseCase {
	return &StatsUseCase{bookRepo: bookRepo, saleRepo: saleRepo}
}

// StatsResponse 看板数据
type StatsResponse struct {
	TotalBooks    int64 `json:"total_books"`     // 在册图书种类数
	TotalRevenue  int64 `json:"total_revenue"`   // 累计销售额
	LowStockBooks int64 `json:"low_stock_books"` // 低库存图书种类数
}

// Execute 汇总看板数据
func (uc *StatsUseCase) Execute(ctx context.Context) (*StatsResponse, error) {
	totalBooks, err := uc.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := uc.saleRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := uc.bookRepo.CountLowStock(ctx, LowStockThreshold)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		TotalBooks:    totalBooks,
		TotalRevenue:  totalRevenue,
		LowStockBooks: lowStock,
	}, nil
}
