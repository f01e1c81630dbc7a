package reservation

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// ListReservationsUseCase 借阅列表查询用例
// 读者查自己的借阅,馆员查全部借阅
type ListReservationsUseCase struct {
	reservationRepo reservation.Repository
	bookRepo        book.Repository
}

// NewListReservationsUseCase 创建借阅列表用例
func NewListReservationsUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
) *ListReservationsUseCase {
	return &ListReservationsUseCase{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
	}
}

// ListReservationsRequest 借阅列表请求DTO
type ListReservationsRequest struct {
	UserID   uint // 查询者用户ID
	All      bool // true时查全部借阅(仅馆员)
	Page     int
	PageSize int
}

// ReservationItem 借阅列表项DTO
type ReservationItem struct {
	ID              uint   `json:"id"`
	UserID          uint   `json:"user_id"`
	BookID          uint   `json:"book_id"`
	BookTitle       string `json:"book_title"`
	ReservationDate string `json:"reservation_date"`
	DueDate         string `json:"due_date"`
	ReturnDate      string `json:"return_date,omitempty"`
	Status          string `json:"status"`
	RenewalCount    int    `json:"renewal_count"`
}

// ListReservationsResponse 借阅列表响应DTO
type ListReservationsResponse struct {
	Items []ReservationItem `json:"items"`
	Total int64             `json:"total"`
}

// Execute 执行借阅列表查询
func (uc *ListReservationsUseCase) Execute(ctx context.Context, req ListReservationsRequest) (*ListReservationsResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 10
	}

	var (
		reservations []*reservation.Reservation
		total        int64
		err          error
	)
	if req.All {
		reservations, total, err = uc.reservationRepo.List(ctx, req.Page, req.PageSize)
	} else {
		reservations, total, err = uc.reservationRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	}
	if err != nil {
		return nil, err
	}

	items, err := uc.buildItems(ctx, reservations)
	if err != nil {
		return nil, err
	}

	return &ListReservationsResponse{Items: items, Total: total}, nil
}

// buildItems 组装列表项,图书标题按BookID去重查询
func (uc *ListReservationsUseCase) buildItems(ctx context.Context, reservations []*reservation.Reservation) ([]ReservationItem, error) {
	titles := make(map[uint]string)
	items := make([]ReservationItem, len(reservations))

	for i, res := range reservations {
		title, ok := titles[res.BookID]
		if !ok {
			b, err := uc.bookRepo.FindByID(ctx, res.BookID)
			if err != nil {
				if err != book.ErrBookNotFound {
					return nil, err
				}
				// 图书已删除,借阅历史仍保留
				title = "(已删除)"
			} else {
				title = b.Title
			}
			titles[res.BookID] = title
		}

		item := ReservationItem{
			ID:              res.ID,
			UserID:          res.UserID,
			BookID:          res.BookID,
			BookTitle:       title,
			ReservationDate: res.ReservationDate.Format(timeLayout),
			DueDate:         res.DueDate.Format(timeLayout),
			Status:          res.Status.String(),
			RenewalCount:    res.RenewalCount,
		}
		if res.ReturnDate != nil {
			item.ReturnDate = res.ReturnDate.Format(timeLayout)
		}
		items[i] = item
	}

	return items, nil
}
