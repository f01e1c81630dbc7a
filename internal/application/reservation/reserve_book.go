package reservation

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ReserveBookUseCase 借书用例
// 设计说明:这是借阅引擎最核心的用例
// 涉及:事务处理、悲观锁防止副本超借、同书在借唯一校验
type ReserveBookUseCase struct {
	reservationRepo reservation.Repository
	bookRepo        book.Repository
	txManager       TxManager
	metrics         *metrics.Metrics
	publisher       EventPublisher
	cache           Cache
	logger          *zap.Logger
	loanPeriodDays  int
}

// NewReserveBookUseCase 创建借书用例
// publisher可为nil(未启用消息队列时)
func NewReserveBookUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	m *metrics.Metrics,
	publisher EventPublisher,
	cache Cache,
	logger *zap.Logger,
	loanPeriodDays int,
) *ReserveBookUseCase {
	return &ReserveBookUseCase{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
		txManager:       txManager,
		metrics:         m,
		publisher:       publisher,
		cache:           cache,
		logger:          logger,
		loanPeriodDays:  loanPeriodDays,
	}
}

// ReserveBookRequest 借书请求DTO
type ReserveBookRequest struct {
	UserID uint // 读者用户ID(从JWT中提取)
	BookID uint // 图书ID
}

// ReserveBookResponse 借书响应DTO
type ReserveBookResponse struct {
	ReservationID   uint   `json:"reservation_id"`
	BookID          uint   `json:"book_id"`
	BookTitle       string `json:"book_title"`
	ReservationDate string `json:"reservation_date"`
	DueDate         string `json:"due_date"`
	Status          string `json:"status"`
}

// Execute 执行借书用例
// 防止副本超借的完整流程:
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 校验同书在借唯一(同一读者同一本书至多一条在借记录)
//  3. 锁定的实体上执行CheckOut(校验可借副本充足)
//  4. 创建借阅记录(应还日期 = 借出日期 + 借期)
//  5. 原子扣减可借副本数
//  6. COMMIT释放锁
func (uc *ReserveBookUseCase) Execute(ctx context.Context, req ReserveBookRequest) (*ReserveBookResponse, error) {
	var (
		result *reservation.Reservation
		title  string
	)

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书(悲观锁,防止并发超借)
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}
		title = b.Title

		// 2. 同书在借唯一校验(必须在锁内,防止并发重复借阅)
		exists, err := uc.reservationRepo.ExistsActive(txCtx, req.UserID, req.BookID)
		if err != nil {
			return err
		}
		if exists {
			return reservation.ErrDuplicateActiveReservation
		}

		// 3. 锁内通过实体行为校验并借出一册(无副本时失败)
		if err := b.CheckOut(); err != nil {
			return err
		}

		// 4. 创建借阅记录
		res := reservation.NewReservation(req.UserID, req.BookID, time.Now(), uc.loanPeriodDays)
		if err := uc.reservationRepo.Create(txCtx, res); err != nil {
			return err
		}

		// 5. 原子扣减可借副本(WHERE条件在数据库层兜底台账不变式)
		if err := uc.bookRepo.UpdateAvailable(txCtx, req.BookID, -1); err != nil {
			return err
		}

		result = res
		return nil
	})

	uc.metrics.ObserveCirculation("borrow", err)
	if err != nil {
		return nil, err
	}

	// 可借数已变化,失效详情缓存
	invalidateBookCache(ctx, uc.cache, uc.logger, req.BookID)

	publishEvent(ctx, uc.publisher, uc.logger, mq.Event{
		Type:          mq.KeyReservationCreated,
		UserID:        result.UserID,
		BookID:        result.BookID,
		ReservationID: result.ID,
	})

	return &ReserveBookResponse{
		ReservationID:   result.ID,
		BookID:          result.BookID,
		BookTitle:       title,
		ReservationDate: result.ReservationDate.Format(timeLayout),
		DueDate:         result.DueDate.Format(timeLayout),
		Status:          result.Status.String(),
	}, nil
}
