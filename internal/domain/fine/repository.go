package fine

import (
	"context"
)

// Repository 罚款仓储接口(依赖倒置原则)
type Repository interface {
	// Create 创建罚款记录(归还事务内调用)
	Create(ctx context.Context, f *Fine) error

	// FindByID 根据ID查找罚款记录
	FindByID(ctx context.Context, id uint) (*Fine, error)

	// Update 更新罚款记录(支付)
	Update(ctx context.Context, f *Fine) error

	// ListByUserID 查询用户的罚款记录(分页)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Fine, int64, error)

	// List 查询全部罚款记录(分页,馆员视角)
	List(ctx context.Context, page, pageSize int) ([]*Fine, int64, error)
}
