package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// memoryRepo 内存仓储,用于Service单元测试
type memoryRepo struct {
	users map[string]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]*User)}
}

func (r *memoryRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.users[u.Username]; ok {
		return apperrors.ErrUsernameDuplicate
	}
	r.users[u.Username] = u
	return nil
}

func (r *memoryRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功且密码被加密", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		u, err := svc.Register(ctx, "alice", "secret123")
		require.NoError(t, err)

		assert.Equal(t, "alice", u.Username)
		assert.NotEqual(t, "secret123", u.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret123")))
	})

	t.Run("用户名重复", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Register(ctx, "alice", "secret123")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "alice", "another456")
		assert.Equal(t, apperrors.ErrCodeUsernameDuplicate, apperrors.CodeOf(err))
	})

	t.Run("用户名格式非法", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		for _, name := range []string{"", "ab", "空 格", "this_username_is_way_too_long"} {
			_, err := svc.Register(ctx, name, "secret123")
			assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err), "username=%q", name)
		}
	})

	t.Run("密码过短", func(t *testing.T) {
		svc := NewService(newMemoryRepo())

		_, err := svc.Register(ctx, "bob", "123")
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.CodeOf(err))
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryRepo())

	_, err := svc.Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "alice", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice", "wrong-password")
		assert.Equal(t, apperrors.ErrCodeInvalidPassword, apperrors.CodeOf(err))
	})

	t.Run("用户不存在时返回同样的错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "secret123")
		assert.Equal(t, apperrors.ErrCodeInvalidPassword, apperrors.CodeOf(err))
	})
}
