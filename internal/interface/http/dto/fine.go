package dto

// ListFinesRequest HTTP罚款列表请求
// all=true时查全部罚款(仅馆员可用)
type ListFinesRequest struct {
	Page     int  `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int  `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	All      bool `form:"all" example:"false"`
}
