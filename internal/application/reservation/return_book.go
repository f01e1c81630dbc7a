package reservation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/notification"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ReturnBookUseCase 还书用例
// 设计说明:
// 1. 归还释放副本(可借数+1),在借和已逾期均可归还
// 2. 逾期归还在同一事务内产生罚款(金额 = 逾期天数 × 日费率)
// 3. 罚款只在归还时产生一次,逾期期间不累计
type ReturnBookUseCase struct {
	reservationRepo  reservation.Repository
	bookRepo         book.Repository
	fineRepo         fine.Repository
	notificationRepo notification.Repository
	calculator       *fine.Calculator
	txManager        TxManager
	metrics          *metrics.Metrics
	publisher        EventPublisher
	cache            Cache
	logger           *zap.Logger
}

// NewReturnBookUseCase 创建还书用例
func NewReturnBookUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
	fineRepo fine.Repository,
	notificationRepo notification.Repository,
	calculator *fine.Calculator,
	txManager TxManager,
	m *metrics.Metrics,
	publisher EventPublisher,
	cache Cache,
	logger *zap.Logger,
) *ReturnBookUseCase {
	return &ReturnBookUseCase{
		reservationRepo:  reservationRepo,
		bookRepo:         bookRepo,
		fineRepo:         fineRepo,
		notificationRepo: notificationRepo,
		calculator:       calculator,
		txManager:        txManager,
		metrics:          m,
		publisher:        publisher,
		cache:            cache,
		logger:           logger,
	}
}

// ReturnBookRequest 还书请求DTO
type ReturnBookRequest struct {
	ReservationID uint // 借阅记录ID
	UserID        uint // 操作用户ID(从JWT中提取)
	IsAdmin       bool // 馆员可代任意读者操作
}

// ReturnBookResponse 还书响应DTO
type ReturnBookResponse struct {
	ReservationID uint   `json:"reservation_id"`
	ReturnDate    string `json:"return_date"`
	Status        string `json:"status"`
	DaysLate      int    `json:"days_late"`
	FineAmount    int64  `json:"fine_amount"`      // 欧分,未逾期为0
	FineAmountEur string `json:"fine_amount_eur"`  //
	FineID        uint   `json:"fine_id,omitempty"` // 产生罚款时返回
}

// Execute 执行还书用例
func (uc *ReturnBookUseCase) Execute(ctx context.Context, req ReturnBookRequest) (*ReturnBookResponse, error) {
	var (
		result   *reservation.Reservation
		issued   *fine.Fine
		daysLate int
	)

	now := time.Now()
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查找借阅记录并校验归属
		res, err := uc.reservationRepo.FindByID(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if !req.IsAdmin && !res.IsOwnedBy(req.UserID) {
			return apperrors.ErrForbidden
		}

		// 2. 状态流转(在借/已逾期 → 已归还)
		// 逾期天数按当前应还日计算,续借延长过的应还日已生效
		daysLate = res.DaysLate(now)
		if err := res.Return(now); err != nil {
			return err
		}
		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			return err
		}

		// 3. 锁定图书,实体行为校验后原子释放副本
		b, err := uc.bookRepo.LockByID(txCtx, res.BookID)
		if err != nil {
			return err
		}
		if err := b.CheckIn(); err != nil {
			return err
		}
		if err := uc.bookRepo.UpdateAvailable(txCtx, res.BookID, +1); err != nil {
			return err
		}

		// 4. 逾期归还产生罚款(同一事务,保证罚款与归还同生共死)
		if daysLate > 0 {
			amount := uc.calculator.Calculate(daysLate)
			reason := fmt.Sprintf("逾期归还%d天", daysLate)
			f := fine.NewFine(res.UserID, res.ID, amount, reason, now)
			if err := uc.fineRepo.Create(txCtx, f); err != nil {
				return err
			}

			// 通知读者产生了罚款
			n := notification.NewNotification(res.UserID,
				fmt.Sprintf("您的借阅已逾期%d天归还,产生罚款%.2f欧元", daysLate, float64(amount)/100.0),
				notification.TypeError, now)
			if err := uc.notificationRepo.Create(txCtx, n); err != nil {
				return err
			}

			issued = f
		}

		result = res
		return nil
	})

	uc.metrics.ObserveCirculation("return", err)
	if err != nil {
		return nil, err
	}

	// 可借数已变化,失效详情缓存
	invalidateBookCache(ctx, uc.cache, uc.logger, result.BookID)

	publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
		Type:          mq.KeyReservationReturned,
		UserID:        result.UserID,
		BookID:        result.BookID,
		ReservationID: result.ID,
	})

	resp := &ReturnBookResponse{
		ReservationID: result.ID,
		ReturnDate:    result.ReturnDate.Format(timeLayout),
		Status:        result.Status.String(),
		DaysLate:      daysLate,
		FineAmountEur: "0.00",
	}

	if issued != nil {
		uc.metrics.ObserveFine(issued.Amount)
		publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
			Type:          mq.KeyFineIssued,
			UserID:        issued.UserID,
			ReservationID: issued.ReservationID,
			AmountCents:   issued.Amount,
		})
		resp.FineAmount = issued.Amount
		resp.FineAmountEur = fmt.Sprintf("%.2f", float64(issued.Amount)/100.0)
		resp.FineID = issued.ID
	}

	return resp, nil
}
