package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/library/internal/domain/book"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// BookCache 图书详情缓存
// 设计说明：
// 1. Key设计：book:detail:{book_id}
// 2. 写操作(更新、删除、借还)后必须Invalidate,避免读到过期台账
// 3. 缓存未命中返回(nil, nil),由调用方回源数据库
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache 创建图书缓存
func NewBookCache(client *redis.Client) *BookCache {
	return &BookCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func bookDetailKey(id uint) string {
	return fmt.Sprintf("book:detail:%d", id)
}

// Get 获取图书详情缓存,未命中返回(nil, nil)
func (c *BookCache) Get(ctx context.Context, id uint) (*book.Book, error) {
	data, err := c.client.Get(ctx, bookDetailKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "读取图书缓存失败")
	}

	var b book.Book
	if err := json.Unmarshal(data, &b); err != nil {
		// 缓存内容损坏,当作未命中处理
		return nil, nil
	}
	return &b, nil
}

// Set 写入图书详情缓存
func (c *BookCache) Set(ctx context.Context, b *book.Book) error {
	data, err := json.Marshal(b)
	if err != nil {
		return apperrors.Wrap(err, "序列化图书失败")
	}

	if err := c.client.Set(ctx, bookDetailKey(b.ID), data, c.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入图书缓存失败")
	}
	return nil
}

// Invalidate 失效图书详情缓存(更新/删除/借还后调用)
func (c *BookCache) Invalidate(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, bookDetailKey(id)).Err(); err != nil {
		return apperrors.Wrap(err, "失效图书缓存失败")
	}
	return nil
}
