package reservation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/notification"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ExpireOverdueUseCase 逾期扫描用例
// 设计说明:
// 1. 由后台定时任务周期性调用,将已过应还日的在借记录标记为已逾期
// 2. 逾期只是状态标签,不释放副本(书仍在读者手中),不产生罚款
// 3. 罚款在实际归还时一次性结算
// 4. 单条失败不中断整批扫描,记录日志后继续
type ExpireOverdueUseCase struct {
	reservationRepo  reservation.Repository
	notificationRepo notification.Repository
	txManager        TxManager
	metrics          *metrics.Metrics
	publisher        EventPublisher
	logger           *zap.Logger
}

// NewExpireOverdueUseCase 创建逾期扫描用例
func NewExpireOverdueUseCase(
	reservationRepo reservation.Repository,
	notificationRepo notification.Repository,
	txManager TxManager,
	m *metrics.Metrics,
	publisher EventPublisher,
	logger *zap.Logger,
) *ExpireOverdueUseCase {
	return &ExpireOverdueUseCase{
		reservationRepo:  reservationRepo,
		notificationRepo: notificationRepo,
		txManager:        txManager,
		metrics:          m,
		publisher:        publisher,
		logger:           logger,
	}
}

// ExpireOverdueResponse 逾期扫描结果DTO
type ExpireOverdueResponse struct {
	Scanned int `json:"scanned"` // 扫描到的逾期在借记录数
	Expired int `json:"expired"` // 成功标记的记录数
}

// Execute 执行逾期扫描
func (uc *ExpireOverdueUseCase) Execute(ctx context.Context) (*ExpireOverdueResponse, error) {
	now := time.Now()

	overdue, err := uc.reservationRepo.ListOverdueActive(ctx, now)
	if err != nil {
		return nil, err
	}

	resp := &ExpireOverdueResponse{Scanned: len(overdue)}

	for _, res := range overdue {
		err := uc.expireOne(ctx, res, now)
		uc.metrics.ObserveCirculation("expire", err)
		if err != nil {
			uc.logger.Warn("标记逾期失败",
				zap.Uint("reservation_id", res.ID),
				zap.Error(err))
			continue
		}
		resp.Expired++

		publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
			Type:          mq.KeyReservationExpired,
			UserID:        res.UserID,
			BookID:        res.BookID,
			ReservationID: res.ID,
		})
	}

	return resp, nil
}

// expireOne 标记单条记录逾期(每条独立事务)
func (uc *ExpireOverdueUseCase) expireOne(ctx context.Context, res *reservation.Reservation, now time.Time) error {
	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := res.Expire(now); err != nil {
			return err
		}
		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			return err
		}

		// 通知读者尽快归还
		n := notification.NewNotification(res.UserID,
			fmt.Sprintf("您的借阅已逾期%d天,请尽快归还,归还时将按逾期天数收取罚款", res.DaysLate(now)),
			notification.TypeWarning, now)
		return uc.notificationRepo.Create(txCtx, n)
	})
}
