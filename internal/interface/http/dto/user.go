package dto

// RegisterRequest HTTP注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=20" example:"alice"`
	Password string `json:"password" binding:"required,min=6,max=72" example:"secret123"`
}

// RegisterResponse HTTP注册响应
type RegisterResponse struct {
	Username string `json:"username" example:"alice"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	Username     string `json:"username" example:"alice"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in" example:"7200"` // Access Token过期时间(秒)
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse HTTP刷新Token响应
type RefreshTokenResponse struct {
	AccessToken string `json:"access_token"`
}
