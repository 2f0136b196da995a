package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// 库存调整动作
const (
	ActionAdd      = "add"      // 进货
	ActionSubtract = "subtract" // 盘亏/退供应商
)

// Transactor 事务边界(生产实现为mysql.TxManager)
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdjustStockUseCase 库存调整用例
// 设计说明:调整和售书走同一套锁与原子更新,避免两条代码路径各自为政
type AdjustStockUseCase struct {
	bookRepo  book.Repository
	txManager Transactor
	cache     *cache.BookCache
}

// NewAdjustStockUseCase 创建库存调整用例
func NewAdjustStockUseCase(bookRepo book.Repository, txManager Transactor, bookCache *cache.BookCache) *AdjustStockUseCase {
	return &AdjustStockUseCase{bookRepo: bookRepo, txManager: txManager, cache: bookCache}
}

// AdjustStockRequest 调整请求DTO
type AdjustStockRequest struct {
	BookID   string
	Action   string // add | subtract
	Quantity int    // 调整数量,必须>0
}

// AdjustStockResponse 调整结果
type AdjustStockResponse struct {
	BookID      string `json:"book_id"`
	BookName    string `json:"book_name"`
	OldQuantity int    `json:"old_quantity"`
	NewQuantity int    `json:"new_quantity"`
}

// Execute 执行库存调整
// 事务内:锁定库存行 → 校验 → 原子更新;减库存不允许减成负数
func (uc *AdjustStockUseCase) Execute(ctx context.Context, req AdjustStockRequest) (*AdjustStockResponse, error) {
	if req.Quantity <= 0 {
		return nil, book.ErrInvalidQuantity
	}

	var delta int
	switch req.Action {
	case ActionAdd:
		delta = req.Quantity
	case ActionSubtract:
		delta = -req.Quantity
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "不支持的库存操作:%s", req.Action)
	}

	var resp *AdjustStockResponse
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		if delta < 0 && b.Quantity < req.Quantity {
			return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
				"图书《%s》库存不足,当前库存:%d,要减少:%d", b.Name, b.Quantity, req.Quantity)
		}

		if err := uc.bookRepo.UpdateStock(txCtx, req.BookID, delta); err != nil {
			return err
		}

		resp = &AdjustStockResponse{
			BookID:      b.ID,
			BookName:    b.Name,
			OldQuantity: b.Quantity,
			NewQuantity: b.Quantity + delta,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 库存变了,缓存里的数量全部作废
	uc.cache.InvalidateAll()
	metrics.StockAdjustmentsTotal.WithLabelValues(req.Action).Inc()

	return resp, nil
}
