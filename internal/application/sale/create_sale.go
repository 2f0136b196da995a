package sale

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/sale"
	"github.com/xiebiao/bookshop/internal/infrastructure/cache"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// Transactor 事务边界
// 由application层定义接口,mysql.TxManager是生产实现,测试用内存假实现
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 交易事件发布(可选能力,未配置MQ时为nil)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// CreateSaleUseCase 售书用例
// 设计说明:这是整个系统最核心的用例
// 一笔交易可包含多本图书,所有扣减与明细写入要么全部成功要么全部失败
type CreateSaleUseCase struct {
	saleRepo  sale.Repository
	bookRepo  book.Repository
	txManager Transactor
	cache     *cache.BookCache
	publisher EventPublisher // 可为nil
}

// NewCreateSaleUseCase 创建售书用例
func NewCreateSaleUseCase(
	saleRepo sale.Repository,
	bookRepo book.Repository,
	txManager Transactor,
	bookCache *cache.BookCache,
	publisher EventPublisher,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		saleRepo:  saleRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		cache:     bookCache,
		publisher: publisher,
	}
}

// CreateSaleRequest 售书请求DTO
type CreateSaleRequest struct {
	CustomerName string           // 顾客姓名
	PhoneNumber  string           // 10位手机号
	Items        []CreateSaleItem // 购买明细
}

// CreateSaleItem 购买明细项
type CreateSaleItem struct {
	BookID   string // 图书编号
	Quantity int    // 购买数量
}

// CreateSaleResponse 售书响应DTO
type CreateSaleResponse struct {
	TransactionID string         `json:"transaction_id"`
	CustomerName  string         `json:"customer_name"`
	Total         int64          `json:"total"`
	Lines         []SaleLineInfo `json:"lines"`
}

// SaleLineInfo 成交明细项
type SaleLineInfo struct {
	BookID   string `json:"book_id"`
	BookName string `json:"book_name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Subtotal int64  `json:"subtotal"`
}

// 手机号:恰好10位ASCII数字
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Execute 执行售书用例
// 核心流程:
//
//  1. 顾客信息与明细的参数校验(事务外,不占连接)
//  2. 事务内逐行:SELECT FOR UPDATE锁定库存行 → 校验数量与库存 → 原子扣减
//  3. 以同一个交易号批量写入销售明细
//  4. COMMIT后同步清空图书缓存,防止读到已扣减前的旧库存
//
// 任何一行失败(图书不存在、库存不足、写入失败)都会整体回滚,
// 已检查过的前几行也不会留下任何扣减痕迹
func (uc *CreateSaleUseCase) Execute(ctx context.Context, req CreateSaleRequest) (*CreateSaleResponse, error) {
	// 1. 顾客信息校验
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" || len(customerName) > 20 {
		return nil, sale.ErrInvalidCustomerName
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return nil, sale.ErrInvalidPhone
	}

	// 2. 明细规范化与校验
	// 空编号或非正数量的行直接丢弃(收银台留空的行);
	// 同一图书出现两行意味着录入错误,拒绝而不是悄悄合并
	seen := make(map[string]bool, len(req.Items))
	items := make([]CreateSaleItem, 0, len(req.Items))
	for _, item := range req.Items {
		id := strings.TrimSpace(item.BookID)
		if id == "" || item.Quantity <= 0 {
			continue
		}
		if seen[id] {
			return nil, sale.ErrDuplicateLineItem
		}
		seen[id] = true
		items = append(items, CreateSaleItem{BookID: id, Quantity: item.Quantity})
	}
	if len(items) == 0 {
		return nil, sale.ErrEmptyTransaction
	}

	// 3. 生成交易号,同一笔交易的所有明细行共享
	txnNo := sale.GenerateTransactionNo()

	var lines []*sale.SaleLine
	var total int64

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		lines = lines[:0]
		total = 0

		for _, item := range items {
			// 锁定库存行,其他事务的扣减必须排队
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}

			// 锁内检查库存,错误信息带上当前库存与需要数量
			if b.Quantity < item.Quantity {
				return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
					"图书《%s》库存不足,当前库存:%d,需要:%d", b.Name, b.Quantity, item.Quantity)
			}

			// 原子扣减(WHERE Quantity + delta >= 0再兜底一次)
			if err := uc.bookRepo.UpdateStock(txCtx, item.BookID, -item.Quantity); err != nil {
				return err
			}

			// 书名与单价取锁定时的快照,不信任前端传值
			lines = append(lines, &sale.SaleLine{
				TransactionID: txnNo,
				CustomerName:  customerName,
				PhoneNumber:   req.PhoneNumber,
				BookID:        b.ID,
				BookName:      b.Name,
				Quantity:      item.Quantity,
				Price:         b.Price,
			})
			total += b.Price * int64(item.Quantity)
		}

		return uc.saleRepo.CreateBatch(txCtx, lines)
	})
	if err != nil {
		return nil, err
	}

	// 4. 提交成功后同步清空缓存
	// 必须在返回前完成,保证紧随其后的查询不会读到旧库存
	uc.cache.InvalidateAll()

	metrics.ObserveSale(total)
	uc.publishCommitted(ctx, txnNo, customerName, total, lines)

	resp := &CreateSaleResponse{
		TransactionID: txnNo,
		CustomerName:  customerName,
		Total:         total,
		Lines:         make([]SaleLineInfo, len(lines)),
	}
	for i, l := range lines {
		resp.Lines[i] = SaleLineInfo{
			BookID:   l.BookID,
			BookName: l.BookName,
			Quantity: l.Quantity,
			Price:    l.Price,
			Subtotal: l.Subtotal(),
		}
	}
	return resp, nil
}

// publishCommitted 发布交易完成事件(尽力而为,失败只记日志)
func (uc *CreateSaleUseCase) publishCommitted(ctx context.Context, txnNo, customerName string, total int64, lines []*sale.SaleLine) {
	if uc.publisher == nil {
		return
	}

	type lineEvent struct {
		BookID   string `json:"book_id"`
		Quantity int    `json:"quantity"`
		Price    int64  `json:"price"`
	}
	event := struct {
		TransactionID string      `json:"transaction_id"`
		CustomerName  string      `json:"customer_name"`
		Total         int64       `json:"total"`
		Lines         []lineEvent `json:"lines"`
	}{
		TransactionID: txnNo,
		CustomerName:  customerName,
		Total:         total,
	}
	for _, l := range lines {
		event.Lines = append(event.Lines, lineEvent{BookID: l.BookID, Quantity: l.Quantity, Price: l.Price})
	}

	if err := uc.publisher.Publish(ctx, "sale.committed", event); err != nil {
		log.Warn().Err(err).Str("transaction_id", txnNo).Msg("发布交易事件失败")
	}
}
