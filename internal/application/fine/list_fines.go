package fine

import (
	"context"
	"fmt"

	"github.com/xiebiao/library/internal/domain/fine"
)

// ListFinesUseCase 罚款列表查询用例
// 读者查自己的罚款,馆员查全部罚款
type ListFinesUseCase struct {
	fineRepo fine.Repository
}

// NewListFinesUseCase 创建罚款列表用例
func NewListFinesUseCase(fineRepo fine.Repository) *ListFinesUseCase {
	return &ListFinesUseCase{fineRepo: fineRepo}
}

// ListFinesRequest 罚款列表请求DTO
type ListFinesRequest struct {
	UserID   uint
	All      bool // true时查全部罚款(仅馆员)
	Page     int
	PageSize int
}

// FineItem 罚款列表项DTO
type FineItem struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	ReservationID uint   `json:"reservation_id"`
	Amount        int64  `json:"amount"`
	AmountEur     string `json:"amount_eur"`
	Reason        string `json:"reason"`
	Paid          bool   `json:"paid"`
	Date          string `json:"date"`
}

// ListFinesResponse 罚款列表响应DTO
type ListFinesResponse struct {
	Items       []FineItem `json:"items"`
	Total       int64      `json:"total"`
	UnpaidCents int64      `json:"unpaid_cents"` // 本页未支付金额合计
}

// Execute 执行罚款列表查询
func (uc *ListFinesUseCase) Execute(ctx context.Context, req ListFinesRequest) (*ListFinesResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 10
	}

	var (
		fines []*fine.Fine
		total int64
		err   error
	)
	if req.All {
		fines, total, err = uc.fineRepo.List(ctx, req.Page, req.PageSize)
	} else {
		fines, total, err = uc.fineRepo.ListByUserID(ctx, req.UserID, req.Page, req.PageSize)
	}
	if err != nil {
		return nil, err
	}

	resp := &ListFinesResponse{
		Items: make([]FineItem, len(fines)),
		Total: total,
	}
	for i, f := range fines {
		resp.Items[i] = FineItem{
			ID:            f.ID,
			UserID:        f.UserID,
			ReservationID: f.ReservationID,
			Amount:        f.Amount,
			AmountEur:     fmt.Sprintf("%.2f", float64(f.Amount)/100.0),
			Reason:        f.Reason,
			Paid:          f.Paid,
			Date:          f.Date.Format("2006-01-02 15:04:05"),
		}
		if !f.Paid {
			resp.UnpaidCents += f.Amount
		}
	}

	return resp, nil
}
