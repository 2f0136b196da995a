package mysql

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Acquire的重试参数:固定间隔,重试耗尽即失败,不做无限等待
const (
	acquireRetries = 3
	acquireBackoff = 200 * time.Millisecond
)

// ConnPool 数据库连接池的显式句柄
// 设计说明:
// 1. 底层复用database/sql的连接池(GORM之下),最大连接数即配置的pool_size
// 2. Acquire在池耗尽或数据库抖动时重试3次,之后返回ErrConnectionUnavailable,
//    让调用方快速失败,而不是把请求挂在池上堆积
// 3. 健康检查通过Ping探测,不占用业务连接
type ConnPool struct {
	sqlDB *sql.DB
	size  int
}

// NewConnPool 从GORM连接上构建连接池句柄
func NewConnPool(db *gorm.DB, size int) (*ConnPool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取SQL DB失败")
	}
	return &ConnPool{sqlDB: sqlDB, size: size}, nil
}

// Acquire 从池中取出一个专用连接
// 用完必须调用Release归还,否则池会被耗尽
func (p *ConnPool) Acquire(ctx context.Context) (*sql.Conn, error) {
	var lastErr error
	for attempt := 1; attempt <= acquireRetries; attempt++ {
		conn, err := p.sqlDB.Conn(ctx)
		if err == nil {
			return conn, nil
		}
		lastErr = err

		log.Warn().Err(err).Int("attempt", attempt).Int("max", acquireRetries).
			Msg("获取数据库连接失败,等待重试")
		if attempt < acquireRetries {
			select {
			case <-time.After(acquireBackoff):
			case <-ctx.Done():
				return nil, apperrors.WrapCode(apperrors.ErrCodeConnectionUnavailable, ctx.Err(), "获取数据库连接被取消")
			}
		}
	}
	return nil, apperrors.WrapCode(apperrors.ErrCodeConnectionUnavailable, lastErr, "数据库连接不可用,请稍后重试")
}

// Release 归还连接
func (p *ConnPool) Release(conn *sql.Conn) {
	if conn == nil {
		return
	}
	if err := conn.Close(); err != nil {
		log.Warn().Err(err).Msg("归还数据库连接失败")
	}
}

// Ping 探测数据库连通性(用于健康检查)
func (p *ConnPool) Ping(ctx context.Context) error {
	if err := p.sqlDB.PingContext(ctx); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeConnectionUnavailable, err, "数据库连接不可用")
	}
	return nil
}

// Size 池的最大连接数
func (p *ConnPool) Size() int {
	return p.size
}

// Stats 当前池状态(透出到监控或健康检查)
func (p *ConnPool) Stats() sql.DBStats {
	return p.sqlDB.Stats()
}
