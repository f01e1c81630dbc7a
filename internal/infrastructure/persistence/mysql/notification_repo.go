package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/notification"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// notificationRepository 通知仓储实现(MySQL)
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &notificationRepository{db: db}
}

// Create 创建通知
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	model := toNotificationModel(n)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建通知失败")
	}

	n.ID = model.ID
	n.CreatedAt = model.CreatedAt
	n.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找通知
func (r *notificationRepository) FindByID(ctx context.Context, id uint) (*notification.Notification, error) {
	var model NotificationModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notification.ErrNotificationNotFound
		}
		return nil, apperrors.Wrap(err, "查询通知失败")
	}

	return toNotificationEntity(&model), nil
}

// Update 更新通知(标记已读)
func (r *notificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	result := dbFromContext(ctx, r.db).Model(&NotificationModel{}).
		Where("id = ?", n.ID).
		Update("read", n.Read)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新通知失败")
	}
	if result.RowsAffected == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// ListByUserID 查询用户的通知(按时间倒序,分页)
func (r *notificationRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*notification.Notification, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&NotificationModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询通知总数失败")
	}

	var models []NotificationModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询通知列表失败")
	}

	notifications := make([]*notification.Notification, len(models))
	for i := range models {
		notifications[i] = toNotificationEntity(&models[i])
	}
	return notifications, total, nil
}

// toNotificationEntity GORM模型 → 领域实体
func toNotificationEntity(model *NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:        model.ID,
		UserID:    model.UserID,
		Message:   model.Message,
		Type:      notification.Type(model.Type),
		Read:      model.Read,
		Date:      model.Date,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// toNotificationModel 领域实体 → GORM模型
func toNotificationModel(n *notification.Notification) *NotificationModel {
	return &NotificationModel{
		ID:      n.ID,
		UserID:  n.UserID,
		Message: n.Message,
		Type:    int(n.Type),
		Read:    n.Read,
		Date:    n.Date,
	}
}
