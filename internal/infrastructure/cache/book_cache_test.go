package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

func sampleBook(id string) book.Book {
	return book.Book{
		ID:       id,
		Name:     "Go程序设计",
		Price:    4500,
		Quantity: 20,
	}
}

func TestBookCache_PutGet(t *testing.T) {
	c := NewBookCache(DefaultTTL)

	c.Put(sampleBook("B001"))

	got, ok := c.Get("B001")
	require.True(t, ok)
	assert.Equal(t, "B001", got.ID)
	assert.Equal(t, int64(4500), got.Price)

	// 返回的是副本,修改不影响缓存
	got.Quantity = 0
	again, ok := c.Get("B001")
	require.True(t, ok)
	assert.Equal(t, 20, again.Quantity)
}

func TestBookCache_Miss(t *testing.T) {
	c := NewBookCache(DefaultTTL)

	_, ok := c.Get("missing")
	assert.False(t, ok)
}

func TestBookCache_Expiry(t *testing.T) {
	c := NewBookCache(time.Minute)

	now := time.Now()
	c.clock = func() time.Time { return now }
	c.Put(sampleBook("B001"))

	// 59秒后仍命中
	c.clock = func() time.Time { return now.Add(59 * time.Second) }
	_, ok := c.Get("B001")
	assert.True(t, ok)

	// 到达TTL后未命中,且条目被当场剔除
	c.clock = func() time.Time { return now.Add(time.Minute) }
	_, ok = c.Get("B001")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestBookCache_PutResetsTimestamp(t *testing.T) {
	c := NewBookCache(time.Minute)

	now := time.Now()
	c.clock = func() time.Time { return now }
	c.Put(sampleBook("B001"))

	// 50秒后重新写入,时间戳重置
	c.clock = func() time.Time { return now.Add(50 * time.Second) }
	c.Put(sampleBook("B001"))

	c.clock = func() time.Time { return now.Add(80 * time.Second) }
	_, ok := c.Get("B001")
	assert.True(t, ok)
}

func TestBookCache_InvalidateAll(t *testing.T) {
	c := NewBookCache(DefaultTTL)

	c.Put(sampleBook("B001"))
	c.Put(sampleBook("B002"))
	require.Equal(t, 2, c.Len())

	c.InvalidateAll()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("B001")
	assert.False(t, ok)
}

func TestBookCache_Concurrent(t *testing.T) {
	c := NewBookCache(DefaultTTL)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("B%03d", i)
			for j := 0; j < 100; j++ {
				c.Put(sampleBook(id))
				c.Get(id)
				if j%10 == 0 {
					c.InvalidateAll()
				}
			}
		}(i)
	}
	wg.Wait()
}
