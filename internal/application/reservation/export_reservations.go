package reservation

import (
	"context"
	"encoding/json"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/reservation"
	"github.com/xiebiao/library/internal/domain/user"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// ExportReservationsUseCase 借阅记录导出用例(馆员)
// 导出为JSON,包含读者姓名与图书标题(按ID去重解析)
type ExportReservationsUseCase struct {
	reservationRepo reservation.Repository
	bookRepo        book.Repository
	userRepo        user.Repository
}

// NewExportReservationsUseCase 创建借阅导出用例
func NewExportReservationsUseCase(
	reservationRepo reservation.Repository,
	bookRepo book.Repository,
	userRepo user.Repository,
) *ExportReservationsUseCase {
	return &ExportReservationsUseCase{
		reservationRepo: reservationRepo,
		bookRepo:        bookRepo,
		userRepo:        userRepo,
	}
}

// ExportedReservation 导出记录DTO
type ExportedReservation struct {
	UserName        string `json:"user_name"`
	BookTitle       string `json:"book_title"`
	ReservationDate string `json:"reservation_date"`
	DueDate         string `json:"due_date"`
	ReturnDate      string `json:"return_date,omitempty"`
	Status          string `json:"status"`
	RenewalCount    int    `json:"renewal_count"`
}

// Execute 执行借阅导出,返回JSON字节流
func (uc *ExportReservationsUseCase) Execute(ctx context.Context) ([]byte, error) {
	reservations, err := uc.reservationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	userNames := make(map[uint]string)
	bookTitles := make(map[uint]string)

	exported := make([]ExportedReservation, len(reservations))
	for i, res := range reservations {
		name, ok := userNames[res.UserID]
		if !ok {
			u, err := uc.userRepo.FindByID(ctx, res.UserID)
			if err != nil {
				if err != apperrors.ErrUserNotFound {
					return nil, err
				}
				name = "(已注销)"
			} else {
				name = u.Name
			}
			userNames[res.UserID] = name
		}

		title, ok := bookTitles[res.BookID]
		if !ok {
			b, err := uc.bookRepo.FindByID(ctx, res.BookID)
			if err != nil {
				if err != book.ErrBookNotFound {
					return nil, err
				}
				title = "(已删除)"
			} else {
				title = b.Title
			}
			bookTitles[res.BookID] = title
		}

		item := ExportedReservation{
			UserName:        name,
			BookTitle:       title,
			ReservationDate: res.ReservationDate.Format(timeLayout),
			DueDate:         res.DueDate.Format(timeLayout),
			Status:          res.Status.String(),
			RenewalCount:    res.RenewalCount,
		}
		if res.ReturnDate != nil {
			item.ReturnDate = res.ReturnDate.Format(timeLayout)
		}
		exported[i] = item
	}

	data, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return nil, apperrors.Wrap(err, "序列化借阅记录失败")
	}
	return data, nil
}
