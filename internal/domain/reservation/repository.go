package reservation

import (
	"context"
	"time"
)

// Repository 借阅仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 支持事务操作(通过context传递事务)
// 3. 借阅记录从不删除,只更新状态
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, r *Reservation) error

	// FindByID 根据ID查找借阅记录
	FindByID(ctx context.Context, id uint) (*Reservation, error)

	// Update 更新借阅记录(状态流转、续借)
	Update(ctx context.Context, r *Reservation) error

	// ExistsActive 检查(用户,图书)是否已有在借记录
	// 借书前的重复校验,必须在借书事务内调用
	ExistsActive(ctx context.Context, userID, bookID uint) (bool, error)

	// CountActiveByBook 统计某图书的在借记录数
	// 删除图书前的校验依据
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)

	// ListByUserID 查询用户的借阅记录(分页)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Reservation, int64, error)

	// List 查询全部借阅记录(分页,馆员视角)
	List(ctx context.Context, page, pageSize int) ([]*Reservation, int64, error)

	// ListAll 查询全部借阅记录(导出用)
	ListAll(ctx context.Context) ([]*Reservation, error)

	// ListOverdueActive 查询已过应还日且仍为在借状态的记录
	// 逾期扫描的数据来源
	ListOverdueActive(ctx context.Context, now time.Time) ([]*Reservation, error)
}
