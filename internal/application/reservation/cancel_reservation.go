package reservation

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// CancelReservationUseCase 取消借阅用例
// 业务规则:
// 1. 只允许取消在借状态的记录(已归还/已取消/已逾期均不可取消)
// 2. 取消释放所占副本,与状态流转在同一事务内完成
type CancelReservationUseCase struct {
	reservationRepo reservation.Repository
	bookRepo        book.Repository
	txManager       TxManager
	metrics         *metrics.Metrics
	publisher       EventPublisher
	cache           Cache
	logger          *zap.Logger
}

// NewCancelReservationUseCase 创建取消借阅用例
func NewCancelReservationUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	m *metrics.Metrics,
	publisher EventPublisher,
	cache Cache,
	logger *zap.Logger,
) *CancelReservationUseCase {
	return &CancelReservationUseCase{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
		txManager:       txManager,
		metrics:         m,
		publisher:       publisher,
		cache:           cache,
		logger:          logger,
	}
}

// CancelReservationRequest 取消借阅请求DTO
type CancelReservationRequest struct {
	ReservationID uint
	UserID        uint
	IsAdmin       bool
}

// CancelReservationResponse 取消借阅响应DTO
type CancelReservationResponse struct {
	ReservationID uint   `json:"reservation_id"`
	Status        string `json:"status"`
}

// Execute 执行取消借阅用例
func (uc *CancelReservationUseCase) Execute(ctx context.Context, req CancelReservationRequest) (*CancelReservationResponse, error) {
	var result *reservation.Reservation

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.FindByID(txCtx, req.ReservationID)
		if err != nil {
			return err
		}
		if !req.IsAdmin && !res.IsOwnedBy(req.UserID) {
			return apperrors.ErrForbidden
		}

		if err := res.Cancel(); err != nil {
			return err
		}
		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			return err
		}

		// 锁定图书,实体行为校验后原子释放副本
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

		result = res
		return nil
	})

	uc.metrics.ObserveCirculation("cancel", err)
	if err != nil {
		return nil, err
	}

	// 可借数已变化,失效详情缓存
	invalidateBookCache(ctx, uc.cache, uc.logger, result.BookID)

	publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
		Type:          mq.KeyReservationCancelled,
		UserID:        result.UserID,
		BookID:        result.BookID,
		ReservationID: result.ID,
	})

	return &CancelReservationResponse{
		ReservationID: result.ID,
		Status:        result.Status.String(),
	}, nil
}
