package notification

import (
	"context"

	"github.com/xiebiao/library/internal/domain/notification"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// MarkReadUseCase 标记通知已读用例
// 标记操作幂等:重复标记已读不报错
type MarkReadUseCase struct {
	notificationRepo notification.Repository
}

// NewMarkReadUseCase 创建标记已读用例
func NewMarkReadUseCase(notificationRepo notification.Repository) *MarkReadUseCase {
	return &MarkReadUseCase{notificationRepo: notificationRepo}
}

// MarkReadRequest 标记已读请求DTO
type MarkReadRequest struct {
	NotificationID uint
	UserID         uint // 操作用户ID,只能标记自己的通知
}

// Execute 执行标记已读
func (uc *MarkReadUseCase) Execute(ctx context.Context, req MarkReadRequest) error {
	n, err := uc.notificationRepo.FindByID(ctx, req.NotificationID)
	if err != nil {
		return err
	}

	if n.UserID != req.UserID {
		return apperrors.ErrForbidden
	}

	n.MarkRead()
	return uc.notificationRepo.Update(ctx, n)
}
