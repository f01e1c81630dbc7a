package user

import (
	"context"
)

// Repository 用户仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据登录名查找用户
	FindByUsername(ctx context.Context, username string) (*User, error)
}
