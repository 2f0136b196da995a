package user

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/user"
)

// RegisterUseCase 店员注册用例
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Username string `json:"username"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{Username: u.Username}, nil
}
