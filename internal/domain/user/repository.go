package user

import (
	"context"
)

// Repository 用户仓储接口
// 设计说明:
// 1. 接口定义在domain层(依赖倒置),实现在infrastructure/persistence/mysql
// 2. 便于单元测试(Mock此接口)
type Repository interface {
	// Create 创建用户
	// 用户名已存在时返回errors.ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByUsername 根据用户名查找
	// 不存在时返回errors.ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)
}
