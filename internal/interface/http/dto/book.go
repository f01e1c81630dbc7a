package dto

// AddBookRequest HTTP新书入馆请求
// validator tag说明:
// - required: 必填字段
// - min/max: 数值范围校验
type AddBookRequest struct {
	ISBN        string `json:"isbn" binding:"required,max=20" example:"9787115428028"`
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author      string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Category    string `json:"category" binding:"omitempty,max=50" example:"计算机"`
	TotalCopies int    `json:"total_copies" binding:"required,min=1,max=999" example:"3"`
	Description string `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
	Location    string `json:"location" binding:"omitempty,max=50" example:"A区3排2架"`
	Language    string `json:"language" binding:"omitempty,max=30" example:"中文"`
	PublishYear int    `json:"publish_year" binding:"omitempty,min=1000,max=2100" example:"2017"`
}

// UpdateBookRequest HTTP更新图书请求
// 副本数调整必须满足 0 <= available <= total 且 total >= 1
type UpdateBookRequest struct {
	Title           string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author          string `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	Category        string `json:"category" binding:"omitempty,max=50" example:"计算机"`
	Description     string `json:"description" binding:"max=5000"`
	Location        string `json:"location" binding:"omitempty,max=50" example:"A区3排2架"`
	Language        string `json:"language" binding:"omitempty,max=30" example:"中文"`
	PublishYear     int    `json:"publish_year" binding:"omitempty,min=1000,max=2100" example:"2017"`
	TotalCopies     int    `json:"total_copies" binding:"required,min=1,max=999" example:"5"`
	AvailableCopies int    `json:"available_copies" binding:"min=0,max=999" example:"4"`
}

// ListBooksRequest HTTP图书列表请求
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"go"`
	Category string `form:"category" binding:"omitempty,max=50" example:"计算机"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=title_asc rating_desc created_at_desc" example:"created_at_desc"`
}
