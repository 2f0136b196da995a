package sale

import (
	"context"
)

// Repository 销售仓储接口
// 设计说明:
// 1. CreateBatch必须在事务内调用,与库存扣减同生共死
// 2. 账本只追加,没有Update/Delete
type Repository interface {
	// CreateBatch 批量写入一笔交易的全部明细行
	CreateBatch(ctx context.Context, lines []*SaleLine) error

	// ListAll 查询全部销售记录,按成交时间倒序
	ListAll(ctx context.Context) ([]*SaleLine, error)

	// TotalRevenue 总销售额 Σ(Price × Quantity)
	TotalRevenue(ctx context.Context) (int64, error)
}
