package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBook_DecrStock 测试扣减库存的业务规则
func TestBook_DecrStock(t *testing.T) {
	t.Run("正常扣减", func(t *testing.T) {
		b := NewBook("B001", "Go程序设计语言", "编程", "Donovan", "机械工业出版社", 9900, 10)

		err := b.DecrStock(3)

		assert.NoError(t, err)
		assert.Equal(t, 7, b.Quantity)
	})

	t.Run("库存不足时拒绝扣减且库存不变", func(t *testing.T) {
		b := NewBook("B100", "测试图书", "编程", "作者", "出版社", 100, 5)

		err := b.DecrStock(6)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 5, b.Quantity, "失败时库存应保持不变")
	})

	t.Run("数量必须大于0", func(t *testing.T) {
		b := NewBook("B002", "测试图书", "编程", "作者", "出版社", 100, 5)

		assert.ErrorIs(t, b.DecrStock(0), ErrInvalidQuantity)
		assert.ErrorIs(t, b.DecrStock(-1), ErrInvalidQuantity)
		assert.Equal(t, 5, b.Quantity)
	})
}

// TestBook_IncrStock 测试补货
func TestBook_IncrStock(t *testing.T) {
	b := NewBook("B003", "测试图书", "小说", "作者", "出版社", 299, 2)

	assert.NoError(t, b.IncrStock(8))
	assert.Equal(t, 10, b.Quantity)

	assert.ErrorIs(t, b.IncrStock(0), ErrInvalidQuantity)
	assert.Equal(t, 10, b.Quantity)
}

// TestBook_InStock 测试有货判断
func TestBook_InStock(t *testing.T) {
	b := NewBook("B004", "测试图书", "小说", "作者", "出版社", 299, 1)
	assert.True(t, b.InStock())

	assert.NoError(t, b.DecrStock(1))
	assert.False(t, b.InStock())
}
