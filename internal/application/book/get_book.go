package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// GetBookUseCase 图书详情查询用例
// 设计说明:
// 1. 图书基础信息走Redis缓存(Cache-Aside),评论始终查库
// 2. 缓存读写失败降级为直接查库,不影响可用性
type GetBookUseCase struct {
	bookRepo   book.Repository
	reviewRepo review.Repository
	userRepo   user.Repository
	cache      Cache
	logger     *zap.Logger
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(
	bookRepo book.Repository,
	reviewRepo review.Repository,
	userRepo user.Repository,
	cache Cache,
	logger *zap.Logger,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo:   bookRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		cache:      cache,
		logger:     logger,
	}
}

// GetBookRequest 图书详情请求DTO
type GetBookRequest struct {
	BookID uint
}

// ReviewItem 评论项DTO
type ReviewItem struct {
	ID       uint   `json:"id"`
	UserID   uint   `json:"user_id"`
	UserName string `json:"user_name"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

// GetBookResponse 图书详情响应DTO
type GetBookResponse struct {
	BookID          uint         `json:"book_id"`
	ISBN            string       `json:"isbn"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	Category        string       `json:"category"`
	TotalCopies     int          `json:"total_copies"`
	AvailableCopies int          `json:"available_copies"`
	Rating          float64      `json:"rating"`
	Description     string       `json:"description"`
	CoverURL        string       `json:"cover_url"`
	PublishYear     int          `json:"publish_year"`
	Location        string       `json:"location"`
	Language        string       `json:"language"`
	Reviews         []ReviewItem `json:"reviews"`
}

// Execute 执行图书详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, req GetBookRequest) (*GetBookResponse, error) {
	b, err := uc.loadBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	items, err := uc.buildReviewItems(ctx, reviews)
	if err != nil {
		return nil, err
	}

	return &GetBookResponse{
		BookID:          b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		Author:          b.Author,
		Category:        b.Category,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
		Rating:          b.Rating,
		Description:     b.Description,
		CoverURL:        b.CoverURL,
		PublishYear:     b.PublishYear,
		Location:        b.Location,
		Language:        b.Language,
		Reviews:         items,
	}, nil
}

// loadBook Cache-Aside读取图书
func (uc *GetBookUseCase) loadBook(ctx context.Context, id uint) (*book.Book, error) {
	cached, err := uc.cache.Get(ctx, id)
	if err != nil {
		uc.logger.Warn("读取图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, b); err != nil {
		uc.logger.Warn("写入图书缓存失败", zap.Uint("book_id", id), zap.Error(err))
	}
	return b, nil
}

// buildReviewItems 组装评论项,评论者姓名按UserID去重查询
func (uc *GetBookUseCase) buildReviewItems(ctx context.Context, reviews []*review.Review) ([]ReviewItem, error) {
	names := make(map[uint]string)
	items := make([]ReviewItem, len(reviews))

	for i, rv := range reviews {
		name, ok := names[rv.UserID]
		if !ok {
			u, err := uc.userRepo.FindByID(ctx, rv.UserID)
			if err != nil {
				if err != apperrors.ErrUserNotFound {
					return nil, err
				}
				name = "(已注销)"
			} else {
				name = u.Name
			}
			names[rv.UserID] = name
		}

		items[i] = ReviewItem{
			ID:       rv.ID,
			UserID:   rv.UserID,
			UserName: name,
			Rating:   rv.Rating,
			Comment:  rv.Comment,
			Date:     rv.Date.Format("2006-01-02 15:04:05"),
		}
	}

	return items, nil
}
