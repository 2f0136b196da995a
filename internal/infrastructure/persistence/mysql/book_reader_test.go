package mysql

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

func TestPooledBookReader_QueriesOnAcquiredConn(t *testing.T) {
	// 池上限只有1:查询必须跑在已取出的那个连接上,
	// 如果回源时再向同一个池要第二个连接,这里会一直等自己
	pool := newStubPool(t, &stubDriver{}, 1)
	reader := NewPooledBookReader(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	b, err := reader.FindByID(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, "B001", b.ID)
	assert.Equal(t, "Go程序设计", b.Name)
	assert.Equal(t, 10, b.Quantity)
	assert.Equal(t, int64(4500), b.Price)

	// 查询结束连接已归还,下一次查询不会被上一次占用挡住
	_, err = reader.FindByID(ctx, "B001")
	require.NoError(t, err)
}

func TestPooledBookReader_ConcurrentLookupsDontStarve(t *testing.T) {
	pool := newStubPool(t, &stubDriver{}, 2)
	reader := NewPooledBookReader(pool)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reader.FindByID(ctx, "B001")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestPooledBookReader_NotFound(t *testing.T) {
	pool := newStubPool(t, &stubDriver{empty: true}, 1)
	reader := NewPooledBookReader(pool)

	_, err := reader.FindByID(context.Background(), "NOPE")
	assert.Equal(t, apperrors.ErrCodeBookNotFound, apperrors.CodeOf(err))
}

func TestPooledBookReader_PoolUnavailable(t *testing.T) {
	pool := newStubPool(t, &stubDriver{failures: 1 << 30}, 1)
	reader := NewPooledBookReader(pool)

	_, err := reader.FindByID(context.Background(), "B001")
	assert.Equal(t, apperrors.ErrCodeConnectionUnavailable, apperrors.CodeOf(err))
}
