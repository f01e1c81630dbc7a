package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reservationRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. 借阅记录从不删除,只更新状态
// 2. ExistsActive/CountActiveByBook走(user_id,book_id,status)复合索引
type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository 创建借阅仓储
func NewReservationRepository(db *gorm.DB) reservation.Repository {
	return &reservationRepository{db: db}
}

// Create 创建借阅记录
func (r *reservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	res.ID = model.ID
	res.CreatedAt = model.CreatedAt
	res.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找借阅记录
func (r *reservationRepository) FindByID(ctx context.Context, id uint) (*reservation.Reservation, error) {
	var model ReservationModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reservation.ErrReservationNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toReservationEntity(&model), nil
}

// Update 更新借阅记录(状态流转、续借)
func (r *reservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	model := toReservationModel(res)
	model.ID = res.ID

	result := dbFromContext(ctx, r.db).Model(&ReservationModel{}).
		Where("id = ?", res.ID).
		Updates(map[string]interface{}{
			"due_date":      model.DueDate,
			"return_date":   model.ReturnDate,
			"status":        model.Status,
			"renewal_count": model.RenewalCount,
		})

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新借阅记录失败")
	}
	if result.RowsAffected == 0 {
		return reservation.ErrReservationNotFound
	}
	return nil
}

// ExistsActive 检查(用户,图书)是否已有在借记录
func (r *reservationRepository) ExistsActive(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&ReservationModel{}).
		Where("user_id = ? AND book_id = ? AND status = ?", userID, bookID, int(reservation.StatusActive)).
		Count(&count).Error

	if err != nil {
		return false, apperrors.Wrap(err, "查询在借记录失败")
	}
	return count > 0, nil
}

// CountActiveByBook 统计某图书的在借记录数
func (r *reservationRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&ReservationModel{}).
		Where("book_id = ? AND status = ?", bookID, int(reservation.StatusActive)).
		Count(&count).Error

	if err != nil {
		return 0, apperrors.Wrap(err, "统计在借记录失败")
	}
	return count, nil
}

// ListByUserID 查询用户的借阅记录(分页,按创建时间倒序)
func (r *reservationRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*reservation.Reservation, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&ReservationModel{}).Where("user_id = ?", userID)
	return r.listPage(query, page, pageSize)
}

// List 查询全部借阅记录(分页,馆员视角)
func (r *reservationRepository) List(ctx context.Context, page, pageSize int) ([]*reservation.Reservation, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&ReservationModel{})
	return r.listPage(query, page, pageSize)
}

// listPage 分页查询公共逻辑
func (r *reservationRepository) listPage(query *gorm.DB, page, pageSize int) ([]*reservation.Reservation, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅总数失败")
	}

	var models []ReservationModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询借阅列表失败")
	}

	reservations := make([]*reservation.Reservation, len(models))
	for i := range models {
		reservations[i] = toReservationEntity(&models[i])
	}
	return reservations, total, nil
}

// ListAll 查询全部借阅记录(导出用)
func (r *reservationRepository) ListAll(ctx context.Context) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	if err := dbFromContext(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅列表失败")
	}

	reservations := make([]*reservation.Reservation, len(models))
	for i := range models {
		reservations[i] = toReservationEntity(&models[i])
	}
	return reservations, nil
}

// ListOverdueActive 查询已过应还日且仍为在借状态的记录
func (r *reservationRepository) ListOverdueActive(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	var models []ReservationModel
	err := dbFromContext(ctx, r.db).
		Where("status = ? AND due_date < ?", int(reservation.StatusActive), now).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询逾期借阅失败")
	}

	reservations := make([]*reservation.Reservation, len(models))
	for i := range models {
		reservations[i] = toReservationEntity(&models[i])
	}
	return reservations, nil
}

// toReservationEntity GORM模型 → 领域实体
func toReservationEntity(model *ReservationModel) *reservation.Reservation {
	return &reservation.Reservation{
		ID:              model.ID,
		UserID:          model.UserID,
		BookID:          model.BookID,
		ReservationDate: model.ReservationDate,
		DueDate:         model.DueDate,
		ReturnDate:      model.ReturnDate,
		Status:          reservation.Status(model.Status),
		RenewalCount:    model.RenewalCount,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}

// toReservationModel 领域实体 → GORM模型
func toReservationModel(r *reservation.Reservation) *ReservationModel {
	return &ReservationModel{
		ID:              r.ID,
		UserID:          r.UserID,
		BookID:          r.BookID,
		ReservationDate: r.ReservationDate,
		DueDate:         r.DueDate,
		ReturnDate:      r.ReturnDate,
		Status:          int(r.Status),
		RenewalCount:    r.RenewalCount,
	}
}
