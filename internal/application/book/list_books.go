package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 列表查询参数
type ListBooksRequest struct {
	InStockOnly bool // 只看有货的
}

// Execute 查询图书列表,按(分类,书名)排序
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*book.Book, error) {
	return uc.bookService.ListBooks(ctx, book.ListParams{InStockOnly: req.InStockOnly})
}
