package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// SessionStore 会话存储
// 设计说明:
// 1. 使用Redis存储店员登录会话
// 2. 支持JWT黑名单(登出后Token立即失效)
// 3. Key设计:session:{username}、blacklist:{token}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveSession 保存登录会话
// 过期时间与Refresh Token一致,过期自动清理
func (s *SessionStore) SaveSession(ctx context.Context, username string, sessionData map[string]interface{}, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", username)

	if err := s.client.HSet(ctx, key, sessionData).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "保存会话失败")
	}

	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "设置会话过期时间失败")
	}

	return nil
}

// GetSession 获取登录会话
// 会话不存在视为未登录
func (s *SessionStore) GetSession(ctx context.Context, username string) (map[string]string, error) {
	key := fmt.Sprintf("session:%s", username)

	result, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "获取会话失败")
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return result, nil
}

// DeleteSession 删除登录会话(用于登出)
func (s *SessionStore) DeleteSession(ctx context.Context, username string) error {
	key := fmt.Sprintf("session:%s", username)

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "删除会话失败")
	}

	return nil
}

// AddToBlacklist 将Token加入黑名单
// ttl取Token的剩余有效期,黑名单条目过期后自动删除
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "添加Token到黑名单失败")
	}

	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.WrapCode(apperrors.ErrCodeRedisError, err, "检查黑名单失败")
	}

	return exists > 0, nil
}
