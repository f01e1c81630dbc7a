package user

import (
	"context"
	"time"
)

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore      SessionStore
	accessTokenExpire time.Duration
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore, accessTokenExpire time.Duration) *LogoutUseCase {
	return &LogoutUseCase{
		sessionStore:      sessionStore,
		accessTokenExpire: accessTokenExpire,
	}
}

// Execute 执行登出
// 1. 删除会话
// 2. Access Token加入黑名单,防止登出后继续使用
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, accessToken string) error {
	if err := uc.sessionStore.DeleteSession(ctx, userID); err != nil {
		return err
	}

	return uc.sessionStore.AddToBlacklist(ctx, accessToken, uc.accessTokenExpire)
}
