package sale

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTransactionNo 生成交易号
// 格式:TXN-<秒级时间戳 yyyyMMddHHmmss>-<4位随机数>
// 示例:TXN-20240115103000-4821
//
// 设计取舍:
// 1. 时间有序,便于人工核对账本
// 2. 同一秒内两笔交易撞上同一个随机数的概率约万分之一,业务上可接受,
//    不做查重(账本按交易号分组展示,极端情况下两笔会并为一组)
func GenerateTransactionNo() string {
	timestamp := time.Now().Format("20060102150405")
	random := 1000 + rand.Intn(9000) // [1000, 9999]
	return fmt.Sprintf("TXN-%s-%d", timestamp, random)
}
