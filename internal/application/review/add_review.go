package review

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// TxManager 事务管理接口(由infrastructure层的mysql.TxManager实现)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Cache 图书缓存失效接口(由redis.BookCache实现)
// 评分回写后失效详情缓存,避免读到旧评分
type Cache interface {
	Invalidate(ctx context.Context, id uint) error
}

// AddReviewUseCase 发表评论用例
// 设计说明:
// 1. 同一读者对同一本书只能评论一次(数据库唯一索引兜底)
// 2. 评论写入与图书评分重算在同一事务内完成
// 3. 图书评分 = 全部评分的均值,四舍五入保留一位小数
type AddReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
	txManager  TxManager
	cache      Cache
	logger     *zap.Logger
}

// NewAddReviewUseCase 创建发表评论用例
func NewAddReviewUseCase(
	reviewRepo review.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	cache Cache,
	logger *zap.Logger,
) *AddReviewUseCase {
	return &AddReviewUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		txManager:  txManager,
		cache:      cache,
		logger:     logger,
	}
}

// AddReviewRequest 发表评论请求DTO
type AddReviewRequest struct {
	BookID  uint
	UserID  uint
	Rating  int // 1-5整数
	Comment string
}

// AddReviewResponse 发表评论响应DTO
type AddReviewResponse struct {
	ReviewID   uint    `json:"review_id"`
	BookID     uint    `json:"book_id"`
	Rating     int     `json:"rating"`
	BookRating float64 `json:"book_rating"` // 重算后的图书评分
}

// Execute 执行发表评论
func (uc *AddReviewUseCase) Execute(ctx context.Context, req AddReviewRequest) (*AddReviewResponse, error) {
	rv, err := review.NewReview(req.BookID, req.UserID, req.Rating, req.Comment, time.Now())
	if err != nil {
		return nil, err
	}

	var bookRating float64
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 图书必须存在
		if _, err := uc.bookRepo.FindByID(txCtx, req.BookID); err != nil {
			return err
		}

		// 2. 重复评论校验(并发下由唯一索引兜底)
		exists, err := uc.reviewRepo.ExistsByBookAndUser(txCtx, req.BookID, req.UserID)
		if err != nil {
			return err
		}
		if exists {
			return review.ErrDuplicateReview
		}

		// 3. 写入评论
		if err := uc.reviewRepo.Create(txCtx, rv); err != nil {
			return err
		}

		// 4. 重算图书评分并回写
		reviews, err := uc.reviewRepo.ListByBook(txCtx, req.BookID)
		if err != nil {
			return err
		}
		bookRating = review.AverageRating(reviews)

		return uc.bookRepo.UpdateRating(txCtx, req.BookID, bookRating)
	})
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, req.BookID); err != nil {
		uc.logger.Warn("失效图书缓存失败", zap.Uint("book_id", req.BookID), zap.Error(err))
	}

	return &AddReviewResponse{
		ReviewID:   rv.ID,
		BookID:     rv.BookID,
		Rating:     rv.Rating,
		BookRating: bookRating,
	}, nil
}
