package reservation

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// RenewReservationUseCase 续借用例
// 业务规则:
// 1. 只有在借状态可以续借,最多续借2次
// 2. 应还日期从当前应还日延长14天(不是从续借当日起算)
type RenewReservationUseCase struct {
	reservationRepo reservation.Repository
	metrics         *metrics.Metrics
	publisher       EventPublisher
	logger          *zap.Logger
	maxRenewals     int
}

// NewRenewReservationUseCase 创建续借用例
func NewRenewReservationUseCase(
	reservationRepo reservation.Repository,
	m *metrics.Metrics,
	publisher EventPublisher,
	logger *zap.Logger,
	maxRenewals int,
) *RenewReservationUseCase {
	return &RenewReservationUseCase{
		reservationRepo: reservationRepo,
		metrics:         m,
		publisher:       publisher,
		logger:          logger,
		maxRenewals:     maxRenewals,
	}
}

// RenewReservationRequest 续借请求DTO
type RenewReservationRequest struct {
	ReservationID uint
	UserID        uint
	IsAdmin       bool
}

// RenewReservationResponse 续借响应DTO
type RenewReservationResponse struct {
	ReservationID uint   `json:"reservation_id"`
	DueDate       string `json:"due_date"`
	RenewalCount  int    `json:"renewal_count"`
	RenewalsLeft  int    `json:"renewals_left"`
}

// Execute 执行续借用例
func (uc *RenewReservationUseCase) Execute(ctx context.Context, req RenewReservationRequest) (*RenewReservationResponse, error) {
	resp, err := uc.execute(ctx, req)
	uc.metrics.ObserveCirculation("renew", err)
	return resp, err
}

func (uc *RenewReservationUseCase) execute(ctx context.Context, req RenewReservationRequest) (*RenewReservationResponse, error) {
	res, err := uc.reservationRepo.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if !req.IsAdmin && !res.IsOwnedBy(req.UserID) {
		return nil, apperrors.ErrForbidden
	}

	if err := res.Renew(uc.maxRenewals); err != nil {
		return nil, err
	}

	if err := uc.reservationRepo.Update(ctx, res); err != nil {
		return nil, err
	}

	publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
		Type:          mq.KeyReservationRenewed,
		UserID:        res.UserID,
		BookID:        res.BookID,
		ReservationID: res.ID,
	})

	return &RenewReservationResponse{
		ReservationID: res.ID,
		DueDate:       res.DueDate.Format(timeLayout),
		RenewalCount:  res.RenewalCount,
		RenewalsLeft:  uc.maxRenewals - res.RenewalCount,
	}, nil
}
