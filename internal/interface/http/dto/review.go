package dto

// AddReviewRequest HTTP发表评论请求
// 评分为1-5整数
type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Comment string `json:"comment" binding:"max=2000" example:"写得很好"`
}
