package book

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 更新图书用例(馆员)
// 更新后失效详情缓存,避免读到过期数据
type UpdateBookUseCase struct {
	bookService book.Service
	cache       Cache
	logger      *zap.Logger
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service, cache Cache, logger *zap.Logger) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
		cache:       cache,
		logger:      logger,
	}
}

// UpdateBookRequest 更新图书请求DTO
type UpdateBookRequest struct {
	BookID          uint
	Title           string
	Author          string
	Category        string
	Description     string
	Location        string
	Language        string
	PublishYear     int
	TotalCopies     int
	AvailableCopies int
}

// UpdateBookResponse 更新图书响应DTO
type UpdateBookResponse struct {
	BookID          uint   `json:"book_id"`
	Title           string `json:"title"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// Execute 执行更新图书
// 副本数调整必须满足 0 <= available <= total 且 total >= 1
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*UpdateBookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, req.BookID,
		req.Title, req.Author, req.Category, req.Description, req.Location, req.Language,
		req.PublishYear, req.TotalCopies, req.AvailableCopies)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Invalidate(ctx, b.ID); err != nil {
		uc.logger.Warn("失效图书缓存失败", zap.Uint("book_id", b.ID), zap.Error(err))
	}

	return &UpdateBookResponse{
		BookID:          b.ID,
		Title:           b.Title,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}, nil
}
