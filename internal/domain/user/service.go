package user

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Service 用户领域服务
// 设计说明:
// 1. 包含不属于单个实体的业务逻辑(密码加密、凭证校验)
// 2. 只依赖Repository接口,不处理HTTP
type Service interface {
	// Register 注册新账号
	Register(ctx context.Context, username, password string) (*User, error)

	// Login 用户名密码登录
	Login(ctx context.Context, username, password string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// Register 用户注册
// 业务规则:
// 1. 用户名3-20位字母数字下划线(表字段varchar(20))
// 2. 密码至少6位
// 3. 密码bcrypt加密(cost=12)
// 4. 用户名唯一性由数据库主键保证,冲突由Repository转换为业务错误
func (s *service) Register(ctx context.Context, username, password string) (*User, error) {
	username = strings.TrimSpace(username)

	// 1. 用户名格式校验
	if !usernamePattern.MatchString(username) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "用户名应为3-20位字母、数字或下划线")
	}

	// 2. 密码长度校验
	if len(password) < 6 || len(password) > 72 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParams, "密码长度应为6-72个字符")
	}

	// 3. 密码加密
	// bcrypt自动加盐,cost=12平衡安全性与性能
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 4. 持久化
	u := NewUser(username, string(hashedPassword))
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}

	return u, nil
}

// Login 用户登录
// 用户不存在与密码错误统一返回ErrInvalidPassword,避免泄露账号是否存在
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeUserNotFound {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, apperrors.Wrap(err, "密码验证失败")
	}

	return u, nil
}
