package dto

// RegisterRequest HTTP注册请求
// 用户名3-30位字母数字下划线,密码8-20位且包含字母和数字(领域层二次校验)
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=30" example:"reader01"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"abc12345"`
	Name     string `json:"name" binding:"required,min=2,max=50" example:"张三"`
	Email    string `json:"email" binding:"omitempty,email,max=100" example:"reader@example.com"`
	Phone    string `json:"phone" binding:"omitempty,max=30" example:"13800138000"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"reader01"`
	Password string `json:"password" binding:"required" example:"abc12345"`
}

// RefreshTokenRequest HTTP刷新Token请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
