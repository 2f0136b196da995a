package book

import (
	"context"
)

// ListParams 列表查询参数
type ListParams struct {
	InStockOnly bool // 只返回Quantity>0的图书
}

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务DB)
type Repository interface {
	// Create 创建图书
	// 图书编号已存在时返回ErrBookIDDuplicate
	Create(ctx context.Context, b *Book) error

	// FindByID 根据编号查找图书
	// 不存在时返回ErrBookNotFound
	FindByID(ctx context.Context, id string) (*Book, error)

	// List 查询图书列表,按(Genre, BookName)排序
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 必须在事务内调用,用于销售/库存调整前锁定库存行
	LockByID(ctx context.Context, id string) (*Book, error)

	// UpdateStock 原子更新库存(stock = stock + delta,保证不为负)
	// 图书不存在返回ErrBookNotFound,扣减后为负返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id string, delta int) error

	// Count 图书种类总数
	Count(ctx context.Context) (int64, error)

	// CountLowStock 库存低于threshold的图书种类数
	CountLowStock(ctx context.Context, threshold int) (int64, error)
}
