package fine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/notification"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// PayFineUseCase 支付罚款用例
// 业务规则:已支付的罚款再次支付必须失败,而非静默成功
type PayFineUseCase struct {
	fineRepo         fine.Repository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewPayFineUseCase 创建支付罚款用例
func NewPayFineUseCase(fineRepo fine.Repository, notificationRepo notification.Repository, logger *zap.Logger) *PayFineUseCase {
	return &PayFineUseCase{
		fineRepo:         fineRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// PayFineRequest 支付罚款请求DTO
type PayFineRequest struct {
	FineID  uint
	UserID  uint // 操作用户ID(从JWT中提取)
	IsAdmin bool // 馆员可代读者线下收款
}

// PayFineResponse 支付罚款响应DTO
type PayFineResponse struct {
	FineID    uint   `json:"fine_id"`
	Amount    int64  `json:"amount"`
	AmountEur string `json:"amount_eur"`
	Paid      bool   `json:"paid"`
}

// Execute 执行支付罚款
func (uc *PayFineUseCase) Execute(ctx context.Context, req PayFineRequest) (*PayFineResponse, error) {
	f, err := uc.fineRepo.FindByID(ctx, req.FineID)
	if err != nil {
		return nil, err
	}

	if !req.IsAdmin && f.UserID != req.UserID {
		return nil, apperrors.ErrForbidden
	}

	if err := f.Pay(); err != nil {
		return nil, err
	}

	if err := uc.fineRepo.Update(ctx, f); err != nil {
		return nil, err
	}

	// 支付成功通知(失败不回滚支付,只记录日志)
	n := notification.NewNotification(f.UserID,
		fmt.Sprintf("罚款%.2f欧元已支付", float64(f.Amount)/100.0),
		notification.TypeSuccess, f.UpdatedAt)
	if err := uc.notificationRepo.Create(ctx, n); err != nil {
		uc.logger.Warn("创建支付通知失败", zap.Uint("fine_id", f.ID), zap.Error(err))
	}

	return &PayFineResponse{
		FineID:    f.ID,
		Amount:    f.Amount,
		AmountEur: fmt.Sprintf("%.2f", float64(f.Amount)/100.0),
		Paid:      f.Paid,
	}, nil
}
