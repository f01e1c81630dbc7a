package dto

// ListNotificationsRequest HTTP通知列表请求
type ListNotificationsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}
