package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
)

// AddBookUseCase 新书入库用例
type AddBookUseCase struct {
	bookService book.Service
	cache       *cache.BookCache
}

// NewAddBookUseCase 创建入库用例
func NewAddBookUseCase(bookService book.Service, bookCache *cache.BookCache) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService, cache: bookCache}
}

// AddBookRequest 入库请求DTO
type AddBookRequest struct {
	BookID      string
	BookName    string
	Genre       string
	Author      string
	Publication string
	Price       int64
	Quantity    int
}

// Execute 执行新书入库
// 入库成功后清空缓存,保证列表与单本查询立即可见
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*book.Book, error) {
	b, err := uc.bookService.AddBook(ctx,
		req.BookID, req.BookName, req.Genre, req.Author, req.Publication,
		req.Price, req.Quantity)
	if err != nil {
		return nil, err
	}

	uc.cache.InvalidateAll()
	return b, nil
}
