package user

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LoginUseCase 店员登录用例
// 设计说明:
// 1. 验证用户名密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis(有效期与Refresh Token一致)
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
	sessionTTL time.Duration,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	Username     string `json:"username"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token过期时间(秒)
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证用户名密码(调用领域服务)
	u, err := uc.userService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成JWT Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.Username)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话到Redis
	// 会话保存失败不影响登录,只记录日志
	sessionData := map[string]interface{}{
		"username": u.Username,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.Username, sessionData, uc.sessionTTL); err != nil {
		log.Warn().Err(err).Str("username", u.Username).Msg("保存登录会话失败")
	}

	return &LoginResponse{
		Username:     u.Username,
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// LogoutUseCase 登出用例
type LogoutUseCase struct {
	sessionStore *redis.SessionStore
	tokenTTL     time.Duration // 黑名单保留时长,取Access Token有效期
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore *redis.SessionStore, tokenTTL time.Duration) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore, tokenTTL: tokenTTL}
}

// Execute 执行登出
// 删除会话并把Access Token拉黑,防止Token在过期前继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, username, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, username); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.tokenTTL)
}
