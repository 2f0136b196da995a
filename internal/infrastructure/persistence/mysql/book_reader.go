package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

const findBookSQL = `SELECT Bookid, BookName, Genre, Quantity, Author, Publication, Price FROM Available_Books WHERE Bookid = ?`

// PooledBookReader 带连接准入的图书回源查询
// 设计说明:
// 1. 回源前先Acquire占住一个池连接,池耗尽时重试3次后快速失败
// 2. 查询就在这个连接上执行,绝不能一边占着池位一边向同一个池要第二个连接,
//    否则pool_size=1时单次查询会等自己,并发回源时会互相等死
// 3. 查询结束立即归还连接
type PooledBookReader struct {
	pool *ConnPool
}

// NewPooledBookReader 创建图书回源查询器
func NewPooledBookReader(pool *ConnPool) *PooledBookReader {
	return &PooledBookReader{pool: pool}
}

// FindByID 按编号查询图书
func (r *PooledBookReader) FindByID(ctx context.Context, id string) (*book.Book, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err // 重试耗尽,ErrConnectionUnavailable
	}
	defer r.pool.Release(conn)

	var b book.Book
	row := conn.QueryRowContext(ctx, findBookSQL, id)
	if err := row.Scan(&b.ID, &b.Name, &b.Genre, &b.Quantity, &b.Author, &b.Publication, &b.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return &b, nil
}
