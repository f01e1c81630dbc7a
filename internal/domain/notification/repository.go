package notification

import (
	"context"
)

// Repository 通知仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建通知
	Create(ctx context.Context, n *Notification) error

	// FindByID 根据ID查找通知
	FindByID(ctx context.Context, id uint) (*Notification, error)

	// Update 更新通知(标记已读)
	Update(ctx context.Context, n *Notification) error

	// ListByUserID 查询用户的通知(按时间倒序,分页)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Notification, int64, error)
}
