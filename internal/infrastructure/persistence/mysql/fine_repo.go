package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/fine"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// fineRepository 罚款仓储实现(MySQL)
type fineRepository struct {
	db *gorm.DB
}

// NewFineRepository 创建罚款仓储
func NewFineRepository(db *gorm.DB) fine.Repository {
	return &fineRepository{db: db}
}

// Create 创建罚款记录
func (r *fineRepository) Create(ctx context.Context, f *fine.Fine) error {
	model := toFineModel(f)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建罚款记录失败")
	}

	f.ID = model.ID
	f.CreatedAt = model.CreatedAt
	f.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找罚款记录
func (r *fineRepository) FindByID(ctx context.Context, id uint) (*fine.Fine, error) {
	var model FineModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fine.ErrFineNotFound
		}
		return nil, apperrors.Wrap(err, "查询罚款记录失败")
	}

	return toFineEntity(&model), nil
}

// Update 更新罚款记录(支付)
func (r *fineRepository) Update(ctx context.Context, f *fine.Fine) error {
	result := dbFromContext(ctx, r.db).Model(&FineModel{}).
		Where("id = ?", f.ID).
		Update("paid", f.Paid)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新罚款记录失败")
	}
	if result.RowsAffected == 0 {
		return fine.ErrFineNotFound
	}
	return nil
}

// ListByUserID 查询用户的罚款记录(分页)
func (r *fineRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*fine.Fine, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&FineModel{}).Where("user_id = ?", userID)
	return r.listPage(query, page, pageSize)
}

// List 查询全部罚款记录(分页,馆员视角)
func (r *fineRepository) List(ctx context.Context, page, pageSize int) ([]*fine.Fine, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&FineModel{})
	return r.listPage(query, page, pageSize)
}

// listPage 分页查询公共逻辑
func (r *fineRepository) listPage(query *gorm.DB, page, pageSize int) ([]*fine.Fine, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询罚款总数失败")
	}

	var models []FineModel
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Limit(pageSize).Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询罚款列表失败")
	}

	fines := make([]*fine.Fine, len(models))
	for i := range models {
		fines[i] = toFineEntity(&models[i])
	}
	return fines, total, nil
}

// toFineEntity GORM模型 → 领域实体
func toFineEntity(model *FineModel) *fine.Fine {
	return &fine.Fine{
		ID:            model.ID,
		UserID:        model.UserID,
		ReservationID: model.ReservationID,
		Amount:        model.Amount,
		Reason:        model.Reason,
		Paid:          model.Paid,
		Date:          model.Date,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// toFineModel 领域实体 → GORM模型
func toFineModel(f *fine.Fine) *FineModel {
	return &FineModel{
		ID:            f.ID,
		UserID:        f.UserID,
		ReservationID: f.ReservationID,
		Amount:        f.Amount,
		Reason:        f.Reason,
		Paid:          f.Paid,
		Date:          f.Date,
	}
}
