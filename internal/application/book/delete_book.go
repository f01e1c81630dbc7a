package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// DeleteBookUseCase 删除图书用例(馆员)
// 业务规则:存在在借记录的图书不允许删除
type DeleteBookUseCase struct {
	bookRepo        book.Repository
	reservationRepo reservation.Repository
	txManager       TxManager
	cache           Cache
	logger          *zap.Logger
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(
	bookRepo book.Repository,
	reservationRepo reservation.Repository,
	txManager TxManager,
	cache Cache,
	logger *zap.Logger,
) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookRepo:        bookRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		cache:           cache,
		logger:          logger,
	}
}

// DeleteBookRequest 删除图书请求DTO
type DeleteBookRequest struct {
	BookID uint
}

// Execute 执行删除图书
// 在借校验与删除在同一事务内完成,防止校验与删除之间产生新借阅
func (uc *DeleteBookUseCase) Execute(ctx context.Context, req DeleteBookRequest) error {
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 锁定图书行,阻塞并发借书事务
		if _, err := uc.bookRepo.LockByID(txCtx, req.BookID); err != nil {
			return err
		}

		count, err := uc.reservationRepo.CountActiveByBook(txCtx, req.BookID)
		if err != nil {
			return err
		}
		if count > 0 {
			return book.ErrBookInUse
		}

		return uc.bookRepo.Delete(txCtx, req.BookID)
	})
	if err != nil {
		return err
	}

	if err := uc.cache.Invalidate(ctx, req.BookID); err != nil {
		uc.logger.Warn("失效图书缓存失败", zap.Uint("book_id", req.BookID), zap.Error(err))
	}

	return nil
}
