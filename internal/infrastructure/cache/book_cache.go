package cache

import (
	"sync"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// DefaultTTL 缓存条目的固定存活时间
const DefaultTTL = 5 * time.Minute

type entry struct {
	book     book.Book
	storedAt time.Time
}

// BookCache 图书查询缓存(进程内)
// 设计说明:
// 1. 互斥锁保护的map,锁内只做内存操作,绝不在持锁期间访问数据库
// 2. 过期采用惰性剔除:Get命中过期条目时当场删除并按未命中处理
// 3. 任何写操作(售书、进货、增删图书)成功后调用InvalidateAll整体失效,
//    宁可多查一次数据库,也不返回过期库存
type BookCache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	clock   func() time.Time // 测试时可替换
}

// NewBookCache 创建缓存,ttl≤0时使用DefaultTTL
func NewBookCache(ttl time.Duration) *BookCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &BookCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		clock:   time.Now,
	}
}

// Get 按图书编号查询缓存
// 返回的是副本,调用方修改不会影响缓存内容
func (c *BookCache) Get(id string) (book.Book, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		metrics.CacheMissesTotal.Inc()
		return book.Book{}, false
	}

	if c.clock().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, id)
		metrics.CacheMissesTotal.Inc()
		return book.Book{}, false
	}

	metrics.CacheHitsTotal.Inc()
	return e.book, true
}

// Put 写入(或覆盖)缓存条目,时间戳重置为当前时刻
func (c *BookCache) Put(b book.Book) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[b.ID] = entry{book: b, storedAt: c.clock()}
}

// InvalidateAll 清空全部条目
func (c *BookCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len 当前条目数(含尚未被剔除的过期条目)
func (c *BookCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
