package dto

// ReserveBookRequest HTTP借书请求
type ReserveBookRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// ListReservationsRequest HTTP借阅列表请求
// all=true时查全部借阅(仅馆员可用)
type ListReservationsRequest struct {
	Page     int  `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int  `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	All      bool `form:"all" example:"false"`
}
