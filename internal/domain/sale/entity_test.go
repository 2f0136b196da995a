package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSaleLine_Subtotal(t *testing.T) {
	line := &SaleLine{Quantity: 3, Price: 4500}
	assert.Equal(t, int64(13500), line.Subtotal())
}

func TestGroupByTransaction(t *testing.T) {
	now := time.Now()

	t.Run("同一交易的多行合并且金额累加", func(t *testing.T) {
		lines := []*SaleLine{
			{TransactionID: "TXN-20260101120000-1234", CustomerName: "张三", PhoneNumber: "1234567890", BookID: "B001", BookName: "Go程序设计", Quantity: 2, Price: 100, SaleDate: now},
			{TransactionID: "TXN-20260101120000-1234", CustomerName: "张三", PhoneNumber: "1234567890", BookID: "B002", BookName: "数据库系统", Quantity: 1, Price: 150, SaleDate: now},
		}

		txns := GroupByTransaction(lines)

		assert.Len(t, txns, 1)
		assert.Equal(t, "TXN-20260101120000-1234", txns[0].ID)
		assert.Equal(t, "张三", txns[0].CustomerName)
		assert.Len(t, txns[0].Lines, 2)
		assert.Equal(t, int64(350), txns[0].Total)
	})

	t.Run("不同交易分开并保持输入顺序", func(t *testing.T) {
		lines := []*SaleLine{
			{TransactionID: "TXN-20260102090000-2222", BookID: "B003", Quantity: 1, Price: 200, SaleDate: now},
			{TransactionID: "TXN-20260101120000-1111", BookID: "B001", Quantity: 2, Price: 100, SaleDate: now.Add(-24 * time.Hour)},
			{TransactionID: "TXN-20260101120000-1111", BookID: "B002", Quantity: 1, Price: 150, SaleDate: now.Add(-24 * time.Hour)},
		}

		txns := GroupByTransaction(lines)

		assert.Len(t, txns, 2)
		assert.Equal(t, "TXN-20260102090000-2222", txns[0].ID)
		assert.Equal(t, "TXN-20260101120000-1111", txns[1].ID)
		assert.Equal(t, int64(200), txns[0].Total)
		assert.Equal(t, int64(350), txns[1].Total)
	})

	t.Run("空输入返回空列表", func(t *testing.T) {
		txns := GroupByTransaction(nil)
		assert.Empty(t, txns)
	})
}

func TestSumTotal(t *testing.T) {
	txns := []*Transaction{
		{Total: 350},
		{Total: 200},
	}
	assert.Equal(t, int64(550), SumTotal(txns))
	assert.Equal(t, int64(0), SumTotal(nil))
}
