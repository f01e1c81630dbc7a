package review

import (
	"context"
)

// Repository 评论仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建评论
	Create(ctx context.Context, r *Review) error

	// ExistsByBookAndUser 检查用户是否已评论过该图书
	ExistsByBookAndUser(ctx context.Context, bookID, userID uint) (bool, error)

	// ListByBook 查询图书的全部评论(按时间倒序)
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)
}
