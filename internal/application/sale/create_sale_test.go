package sale

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/sale"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// =========================================
// 内存假实现:仓储与事务
// =========================================

type fakeBookRepo struct {
	books map[string]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	r := &fakeBookRepo{books: make(map[string]*book.Book)}
	for _, b := range books {
		copied := *b
		r.books[b.ID] = &copied
	}
	return r
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	if _, ok := r.books[b.ID]; ok {
		return book.ErrBookIDDuplicate
	}
	copied := *b
	r.books[b.ID] = &copied
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id string) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookRepo) List(_ context.Context, _ book.ListParams) ([]*book.Book, error) {
	var out []*book.Book
	for _, b := range r.books {
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeBookRepo) LockByID(ctx context.Context, id string) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeBookRepo) UpdateStock(_ context.Context, id string, delta int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	if b.Quantity+delta < 0 {
		return book.ErrInsufficientStock
	}
	b.Quantity += delta
	return nil
}

func (r *fakeBookRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.books)), nil
}

func (r *fakeBookRepo) CountLowStock(_ context.Context, threshold int) (int64, error) {
	var n int64
	for _, b := range r.books {
		if b.Quantity < threshold {
			n++
		}
	}
	return n, nil
}

func (r *fakeBookRepo) snapshot() map[string]*book.Book {
	snap := make(map[string]*book.Book, len(r.books))
	for id, b := range r.books {
		copied := *b
		snap[id] = &copied
	}
	return snap
}

type fakeSaleRepo struct {
	lines      []*sale.SaleLine
	failCreate bool // 模拟明细写入失败
}

func (r *fakeSaleRepo) CreateBatch(_ context.Context, lines []*sale.SaleLine) error {
	if r.failCreate {
		return apperrors.ErrPersistenceFailure
	}
	r.lines = append(r.lines, lines...)
	return nil
}

func (r *fakeSaleRepo) ListAll(_ context.Context) ([]*sale.SaleLine, error) {
	out := make([]*sale.SaleLine, len(r.lines))
	copy(out, r.lines)
	return out, nil
}

func (r *fakeSaleRepo) TotalRevenue(_ context.Context) (int64, error) {
	var total int64
	for _, l := range r.lines {
		total += l.Subtotal()
	}
	return total, nil
}

// fakeTx 内存事务:执行前快照,失败时整体恢复
// 模拟真实数据库事务的回滚语义
type fakeTx struct {
	bookRepo *fakeBookRepo
	saleRepo *fakeSaleRepo
}

func (t *fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	bookSnap := t.bookRepo.snapshot()
	saleSnap := len(t.saleRepo.lines)

	if err := fn(ctx); err != nil {
		t.bookRepo.books = bookSnap
		t.saleRepo.lines = t.saleRepo.lines[:saleSnap]
		return err
	}
	return nil
}

func newUseCase(bookRepo *fakeBookRepo, saleRepo *fakeSaleRepo) *CreateSaleUseCase {
	tx := &fakeTx{bookRepo: bookRepo, saleRepo: saleRepo}
	return NewCreateSaleUseCase(saleRepo, bookRepo, tx, cache.NewBookCache(cache.DefaultTTL), nil)
}

func stockOf(t *testing.T, repo *fakeBookRepo, id string) int {
	t.Helper()
	b, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b.Quantity
}

// =========================================
// 用例测试
// =========================================

func TestCreateSale_MultiLineSuccess(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10},
		&book.Book{ID: "B002", Name: "数据库系统", Price: 150, Quantity: 5},
	)
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	resp, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "B001", Quantity: 2},
			{BookID: "B002", Quantity: 1},
		},
	})
	require.NoError(t, err)

	// 总金额 = 2×100 + 1×150
	assert.Equal(t, int64(350), resp.Total)
	assert.Regexp(t, `^TXN-\d{14}-\d{4}$`, resp.TransactionID)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, int64(200), resp.Lines[0].Subtotal)
	assert.Equal(t, int64(150), resp.Lines[1].Subtotal)

	// 两行库存都被扣减
	assert.Equal(t, 8, stockOf(t, bookRepo, "B001"))
	assert.Equal(t, 4, stockOf(t, bookRepo, "B002"))

	// 明细落账:同一交易号,价格是成交时快照
	require.Len(t, saleRepo.lines, 2)
	assert.Equal(t, resp.TransactionID, saleRepo.lines[0].TransactionID)
	assert.Equal(t, resp.TransactionID, saleRepo.lines[1].TransactionID)
	assert.Equal(t, "Go程序设计", saleRepo.lines[0].BookName)
	assert.Equal(t, int64(100), saleRepo.lines[0].Price)
}

func TestCreateSale_InsufficientStockRollsBackWholeTransaction(t *testing.T) {
	bookRepo := newFakeBookRepo(
		&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10},
		&book.Book{ID: "B002", Name: "数据库系统", Price: 150, Quantity: 3},
	)
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	// 第一行够,第二行不够:整笔失败
	_, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "B001", Quantity: 2},
			{BookID: "B002", Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, apperrors.CodeOf(err))
	// 错误信息带上当前库存与需要数量
	assert.Contains(t, apperrors.GetAppError(err).Message, "当前库存:3")
	assert.Contains(t, apperrors.GetAppError(err).Message, "需要:5")

	// 第一行的扣减也被回滚,账本无新增
	assert.Equal(t, 10, stockOf(t, bookRepo, "B001"))
	assert.Equal(t, 3, stockOf(t, bookRepo, "B002"))
	assert.Empty(t, saleRepo.lines)
}

func TestCreateSale_BookNotFound(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10})
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	_, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "B001", Quantity: 1},
			{BookID: "NOPE", Quantity: 1},
		},
	})
	assert.Equal(t, apperrors.ErrCodeBookNotFound, apperrors.CodeOf(err))
	assert.Equal(t, 10, stockOf(t, bookRepo, "B001"))
	assert.Empty(t, saleRepo.lines)
}

func TestCreateSale_DropsBlankAndNonPositiveLines(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10})
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	// 空编号和非正数量的行被过滤,剩余有效行正常成交
	resp, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "", Quantity: 2},
			{BookID: "B001", Quantity: 0},
			{BookID: "B001", Quantity: 3},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(300), resp.Total)
	assert.Equal(t, 7, stockOf(t, bookRepo, "B001"))

	// 全部行无效等价于空交易
	_, err = uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "  ", Quantity: 1},
			{BookID: "B001", Quantity: -3},
		},
	})
	assert.Equal(t, apperrors.ErrCodeEmptyTransaction, apperrors.CodeOf(err))
	assert.Equal(t, 7, stockOf(t, bookRepo, "B001"))
}

func TestCreateSale_DuplicateLineItem(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10})
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	_, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items: []CreateSaleItem{
			{BookID: "B001", Quantity: 1},
			{BookID: "B001", Quantity: 2},
		},
	})
	assert.Equal(t, apperrors.ErrCodeDuplicateLineItem, apperrors.CodeOf(err))
	assert.Equal(t, 10, stockOf(t, bookRepo, "B001"))
}

func TestCreateSale_EmptyTransaction(t *testing.T) {
	uc := newUseCase(newFakeBookRepo(), &fakeSaleRepo{})

	_, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
	})
	assert.Equal(t, apperrors.ErrCodeEmptyTransaction, apperrors.CodeOf(err))
}

func TestCreateSale_InvalidCustomerInfo(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10})
	uc := newUseCase(bookRepo, &fakeSaleRepo{})
	items := []CreateSaleItem{{BookID: "B001", Quantity: 1}}

	t.Run("姓名为空", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CreateSaleRequest{
			CustomerName: "  ", PhoneNumber: "1234567890", Items: items,
		})
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
	})

	t.Run("手机号必须恰好10位数字", func(t *testing.T) {
		for _, phone := range []string{"", "123456789", "12345678901", "12345abcde", "123-456789"} {
			_, err := uc.Execute(context.Background(), CreateSaleRequest{
				CustomerName: "张三", PhoneNumber: phone, Items: items,
			})
			assert.Equal(t, apperrors.ErrCodeInvalidPhone, apperrors.CodeOf(err), "phone=%q", phone)
		}
	})
}

func TestCreateSale_PersistenceFailureRollsBackStock(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 10})
	saleRepo := &fakeSaleRepo{failCreate: true}
	uc := newUseCase(bookRepo, saleRepo)

	_, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items:        []CreateSaleItem{{BookID: "B001", Quantity: 2}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodePersistenceFailure, apperrors.CodeOf(err))

	// 明细写入失败时库存扣减一并回滚
	assert.Equal(t, 10, stockOf(t, bookRepo, "B001"))
	assert.Empty(t, saleRepo.lines)
}

func TestCreateSale_ExactStockSellsOut(t *testing.T) {
	bookRepo := newFakeBookRepo(&book.Book{ID: "B001", Name: "Go程序设计", Price: 100, Quantity: 3})
	saleRepo := &fakeSaleRepo{}
	uc := newUseCase(bookRepo, saleRepo)

	// 恰好买空是允许的
	resp, err := uc.Execute(context.Background(), CreateSaleRequest{
		CustomerName: "张三",
		PhoneNumber:  "1234567890",
		Items:        []CreateSaleItem{{BookID: "B001", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(300), resp.Total)
	assert.Equal(t, 0, stockOf(t, bookRepo, "B001"))
}
