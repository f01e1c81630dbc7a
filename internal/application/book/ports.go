package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// TxManager 事务管理接口(由infrastructure层的mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache 图书详情缓存接口(由redis.BookCache实现)
// Get未命中返回(nil, nil),由用例回源数据库
type Cache interface {
	Get(ctx context.Context, id uint) (*book.Book, error)
	Set(ctx context.Context, b *book.Book) error
	Invalidate(ctx context.Context, id uint) error
}
