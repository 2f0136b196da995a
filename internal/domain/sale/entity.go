package sale

import (
	"time"
)

// SaleLine 销售明细行(持久化实体)
// 设计说明:
// 1. 同一笔交易的所有明细行共享一个TransactionID
// 2. BookName和Price是成交时的快照(历史价格),不随图书表变化
// 3. 提交后不可变,账本只追加不修改
type SaleLine struct {
	ID            uint
	TransactionID string    // 交易号,同一笔交易内所有行相同
	CustomerName  string    // 顾客姓名
	PhoneNumber   string    // 10位手机号
	BookID        string    // 图书编号(图书被删除后置空)
	BookName      string    // 成交时的书名快照
	Quantity      int       // 数量,不变量:>0
	Price         int64     // 成交时的单价快照
	SaleDate      time.Time // 成交时间
}

// Subtotal 本行小计
func (l *SaleLine) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Transaction 一笔交易(派生聚合)
// 设计说明:
// 交易本身没有独立的表,读取时按TransactionID把明细行重新分组得到,
// Total等于各行(数量×快照单价)之和
type Transaction struct {
	ID           string
	CustomerName string
	PhoneNumber  string
	SaleDate     time.Time
	Lines        []SaleLine
	Total        int64
}

// GroupByTransaction 把按时间倒序排列的明细行分组为交易列表
// 保持输入顺序:先出现的交易排在前面(即最新的交易在前)
func GroupByTransaction(lines []*SaleLine) []*Transaction {
	var result []*Transaction
	index := make(map[string]*Transaction)

	for _, l := range lines {
		txn, ok := index[l.TransactionID]
		if !ok {
			txn = &Transaction{
				ID:           l.TransactionID,
				CustomerName: l.CustomerName,
				PhoneNumber:  l.PhoneNumber,
				SaleDate:     l.SaleDate,
			}
			index[l.TransactionID] = txn
			result = append(result, txn)
		}

		txn.Lines = append(txn.Lines, *l)
		txn.Total += l.Subtotal()
	}

	return result
}

// SumTotal 计算一组交易的总销售额
func SumTotal(txns []*Transaction) int64 {
	var total int64
	for _, txn := range txns {
		total += txn.Total
	}
	return total
}
