package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// AddBookUseCase 新书入馆用例(馆员)
type AddBookUseCase struct {
	bookService book.Service
}

// NewAddBookUseCase 创建新书入馆用例
func NewAddBookUseCase(bookService book.Service) *AddBookUseCase {
	return &AddBookUseCase{bookService: bookService}
}

// AddBookRequest 新书入馆请求DTO
type AddBookRequest struct {
	ISBN        string
	Title       string
	Author      string
	Category    string
	TotalCopies int
	Description string
	CoverURL    string
	Location    string
	Language    string
	PublishYear int
}

// AddBookResponse 新书入馆响应DTO
type AddBookResponse struct {
	BookID          uint   `json:"book_id"`
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// Execute 执行新书入馆
// 入馆时可借副本数 = 总副本数
func (uc *AddBookUseCase) Execute(ctx context.Context, req AddBookRequest) (*AddBookResponse, error) {
	b, err := uc.bookService.AddBook(ctx,
		req.ISBN, req.Title, req.Author, req.Category, req.TotalCopies,
		req.Description, req.CoverURL, req.Location, req.Language, req.PublishYear)
	if err != nil {
		return nil, err
	}

	return &AddBookResponse{
		BookID:          b.ID,
		ISBN:            b.ISBN,
		Title:           b.Title,
		TotalCopies:     b.TotalCopies,
		AvailableCopies: b.AvailableCopies,
	}, nil
}
