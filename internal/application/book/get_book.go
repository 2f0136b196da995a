package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
)

// Finder 图书回源查询
// 生产实现为mysql.PooledBookReader:先占一个池连接再在该连接上查询,
// 池耗尽时快速失败(ErrConnectionUnavailable)而不是无限排队
type Finder interface {
	FindByID(ctx context.Context, id string) (*book.Book, error)
}

// GetBookUseCase 单本图书查询用例(带缓存)
// 设计说明:
// 1. 先查进程内缓存,命中直接返回(不占数据库连接)
// 2. 未命中才回源数据库,结果写入缓存
// 3. Cached标记透出给前端,方便观察缓存效果
type GetBookUseCase struct {
	finder Finder
	cache  *cache.BookCache
}

// NewGetBookUseCase 创建查询用例
func NewGetBookUseCase(finder Finder, bookCache *cache.BookCache) *GetBookUseCase {
	return &GetBookUseCase{finder: finder, cache: bookCache}
}

// GetBookResult 查询结果
type GetBookResult struct {
	Book   book.Book
	Cached bool // 本次结果是否来自缓存
}

// Execute 按编号查询图书
func (uc *GetBookUseCase) Execute(ctx context.Context, id string) (*GetBookResult, error) {
	if b, ok := uc.cache.Get(id); ok {
		return &GetBookResult{Book: b, Cached: true}, nil
	}

	b, err := uc.finder.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.cache.Put(*b)
	return &GetBookResult{Book: *b, Cached: false}, nil
}
