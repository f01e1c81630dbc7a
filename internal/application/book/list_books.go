package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 公开接口:支持关键词搜索(书名/作者/ISBN,不区分大小写)、分类过滤、排序
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建图书列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// ListBooksRequest 图书列表请求DTO
type ListBooksRequest struct {
	Page     int
	PageSize int
	Keyword  string
	Category string
	SortBy   string // title_asc | rating_desc | created_at_desc
}

// BookItem 图书列表项DTO
type BookItem struct {
	BookID          uint    `json:"book_id"`
	ISBN            string  `json:"isbn"`
	Title           string  `json:"title"`
	Author          string  `json:"author"`
	Category        string  `json:"category"`
	TotalCopies     int     `json:"total_copies"`
	AvailableCopies int     `json:"available_copies"`
	Rating          float64 `json:"rating"`
	CoverURL        string  `json:"cover_url"`
}

// ListBooksResponse 图书列表响应DTO
type ListBooksResponse struct {
	Items []BookItem `json:"items"`
	Total int64      `json:"total"`
}

// Execute 执行图书列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 10
	}

	books, total, err := uc.bookService.ListBooks(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		Category: req.Category,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	items := make([]BookItem, len(books))
	for i, b := range books {
		items[i] = BookItem{
			BookID:          b.ID,
			ISBN:            b.ISBN,
			Title:           b.Title,
			Author:          b.Author,
			Category:        b.Category,
			TotalCopies:     b.TotalCopies,
			AvailableCopies: b.AvailableCopies,
			Rating:          b.Rating,
			CoverURL:        b.CoverURL,
		}
	}

	return &ListBooksResponse{Items: items, Total: total}, nil
}
