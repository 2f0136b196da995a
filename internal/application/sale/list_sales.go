package sale

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/sale"
)

// ListSalesUseCase 销售台账查询用例
type ListSalesUseCase struct {
	saleRepo sale.Repository
}

// NewListSalesUseCase 创建台账查询用例
func NewListSalesUseCase(saleRepo sale.Repository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// ListSalesResponse 台账响应DTO
type ListSalesResponse struct {
	Transactions []TransactionInfo `json:"transactions"`
	Count        int               `json:"count"`
	TotalRevenue int64             `json:"total_revenue"`
}

// TransactionInfo 一笔交易
type TransactionInfo struct {
	TransactionID string         `json:"transaction_id"`
	CustomerName  string         `json:"customer_name"`
	PhoneNumber   string         `json:"phone_number"`
	SaleDate      string         `json:"sale_date"`
	Total         int64          `json:"total"`
	Lines         []SaleLineInfo `json:"lines"`
}

// Execute 查询全部销售记录,按交易分组,最新的交易在前
func (uc *ListSalesUseCase) Execute(ctx context.Context) (*ListSalesResponse, error) {
	lines, err := uc.saleRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	txns := sale.GroupByTransaction(lines)

	resp := &ListSalesResponse{
		Transactions: make([]TransactionInfo, len(txns)),
		Count:        len(txns),
		TotalRevenue: sale.SumTotal(txns),
	}
	for i, txn := range txns {
		info := TransactionInfo{
			TransactionID: txn.ID,
			CustomerName:  txn.CustomerName,
			PhoneNumber:   txn.PhoneNumber,
			SaleDate:      txn.SaleDate.Format(time.DateTime),
			Total:         txn.Total,
			Lines:         make([]SaleLineInfo, len(txn.Lines)),
		}
		for j := range txn.Lines {
			l := &txn.Lines[j]
			info.Lines[j] = SaleLineInfo{
				BookID:   l.BookID,
				BookName: l.BookName,
				Quantity: l.Quantity,
				Price:    l.Price,
				Subtotal: l.Subtotal(),
			}
		}
		resp.Transactions[i] = info
	}
	return resp, nil
}
