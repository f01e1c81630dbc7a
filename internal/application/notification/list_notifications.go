package notification

import (
	"context"

	"github.com/xiebiao/library/internal/domain/notification"
)

// ListNotificationsUseCase 通知列表查询用例
// 读者只能查看自己的通知
type ListNotificationsUseCase struct {
	notificationRepo notification.Repository
}

// NewListNotificationsUseCase 创建通知列表用例
func NewListNotificationsUseCase(notificationRepo notification.Repository) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{notificationRepo: notificationRepo}
}

// ListNotificationsRequest 通知列表请求DTO
type ListNotificationsRequest struct {
	UserID   uint
	Page     int
	PageSize int
}

// NotificationItem 通知列表项DTO
type NotificationItem struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
	Type    string `json:"type"` // info | success | warning | error
	Read    bool   `json:"read"`
	Date    string `json:"date"`
}

// ListNotificationsResponse 通知列表响应DTO
type ListNotificationsResponse struct {
	Items []NotificationItem `json:"items"`
	Total int64              `json:"total"`
}

// Execute 执行通知列表查询
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, req ListNotificationsRequest) (*ListNotificationsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 10
	}

	notifications, total, err := uc.notificationRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]NotificationItem, len(notifications))
	for i, n := range notifications {
		items[i] = NotificationItem{
			ID:      n.ID,
			Message: n.Message,
			Type:    n.Type.String(),
			Read:    n.Read,
			Date:    n.Date.Format("2006-01-02 15:04:05"),
		}
	}

	return &ListNotificationsResponse{Items: items, Total: total}, nil
}
