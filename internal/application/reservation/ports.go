package reservation

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/pkg/mq"
)

// TxManager 事务管理接口(由infrastructure层的mysql.TxManager实现)
// 应用层只依赖接口,测试时可注入直通实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 借阅事件发布接口(由pkg/mq.Publisher实现)
// 事件发布失败不阻断业务流程,调用方记录日志后继续
type EventPublisher interface {
	Publish(ctx context.Context, event mq.Event) error
}

// Cache 图书缓存失效接口(由redis.BookCache实现)
// 缓存快照含可借副本数,借还取消改动台账后必须失效,否则详情接口
// 在TTL内一直返回旧的可借数
type Cache interface {
	Invalidate(ctx context.Context, id uint) error
}

// invalidateBookCache 失效图书详情缓存(事务提交后调用,失败只记录日志)
func invalidateBookCache(ctx context.Context, cache Cache, logger *zap.Logger, bookID uint) {
	if err := cache.Invalidate(ctx, bookID); err != nil {
		logger.Warn("失效图书缓存失败", zap.Uint("book_id", bookID), zap.Error(err))
	}
}

// timeLayout 响应DTO统一的时间格式
const timeLayout = "2006-01-02 15:04:05"

// publishEvent 发布借阅事件(publisher为nil时跳过,失败只记录日志)
func publishEvent(ctx context.Context, publisher EventPublisher, logger *zap.Logger, event mq.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.Warn("发布借阅事件失败",
			zap.String("type", event.Type),
			zap.Uint("reservation_id", event.ReservationID),
			zap.Error(err))
	}
}
