package sale

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/sale"
)

func TestListSales_GroupsByTransaction(t *testing.T) {
	now := time.Now()
	saleRepo := &fakeSaleRepo{lines: []*sale.SaleLine{
		{TransactionID: "TXN-20260102090000-2222", CustomerName: "李四", PhoneNumber: "0987654321", BookID: "B003", BookName: "操作系统", Quantity: 1, Price: 200, SaleDate: now},
		{TransactionID: "TXN-20260101120000-1111", CustomerName: "张三", PhoneNumber: "1234567890", BookID: "B001", BookName: "Go程序设计", Quantity: 2, Price: 100, SaleDate: now.Add(-24 * time.Hour)},
		{TransactionID: "TXN-20260101120000-1111", CustomerName: "张三", PhoneNumber: "1234567890", BookID: "B002", BookName: "数据库系统", Quantity: 1, Price: 150, SaleDate: now.Add(-24 * time.Hour)},
	}}

	uc := NewListSalesUseCase(saleRepo)
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, int64(550), resp.TotalRevenue)

	// 最新的交易在前
	assert.Equal(t, "TXN-20260102090000-2222", resp.Transactions[0].TransactionID)

	second := resp.Transactions[1]
	assert.Equal(t, "张三", second.CustomerName)
	assert.Equal(t, int64(350), second.Total)
	require.Len(t, second.Lines, 2)
	assert.Equal(t, int64(200), second.Lines[0].Subtotal)
}

func TestListSales_Empty(t *testing.T) {
	uc := NewListSalesUseCase(&fakeSaleRepo{})
	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, resp.Count)
	assert.Empty(t, resp.Transactions)
	assert.Equal(t, int64(0), resp.TotalRevenue)
}
