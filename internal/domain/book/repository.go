package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书(软删除)
	// 注意:删除前的在借校验由应用层在事务内完成
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	// params包含:page, pageSize, keyword, category, sortBy
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ListAll 查询全部图书(导出用)
	ListAll(ctx context.Context) ([]*Book, error)

	// LockByID 悲观锁查询图书(借书时锁定副本台账)
	// 使用SELECT FOR UPDATE锁定行,防止并发借出同一副本
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateAvailable 更新可借副本数(原子操作)
	// delta为正数表示归还,负数表示借出
	// 内部保证 0 <= available + delta <= total,越界返回对应业务错误
	UpdateAvailable(ctx context.Context, id uint, delta int) error

	// UpdateRating 更新评分(评论聚合重算后回写)
	UpdateRating(ctx context.Context, id uint, rating float64) error
}

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(搜索标题、作者、ISBN,不区分大小写)
	Category string // 分类过滤(空串表示全部)
	SortBy   string // 排序字段(title_asc, rating_desc, created_at_desc)
}
