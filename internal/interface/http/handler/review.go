package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/library/internal/application/review"
	"github.com/xiebiao/library/internal/interface/http/dto"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/response"
)

// ReviewHandler 评论HTTP处理器
type ReviewHandler struct {
	addReviewUseCase *appreview.AddReviewUseCase
}

// NewReviewHandler 创建评论处理器
func NewReviewHandler(addReviewUseCase *appreview.AddReviewUseCase) *ReviewHandler {
	return &ReviewHandler{addReviewUseCase: addReviewUseCase}
}

// AddReview 发表评论
// @Summary      发表评论
// @Description  对图书发表评论(1-5分),同一本书只能评论一次;图书评分随之重算
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.AddReviewRequest true "评论信息"
// @Success      200 {object} response.Response{data=appreview.AddReviewResponse}
// @Failure      400 {object} response.Response "已评论过该图书"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/reviews [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	result, err := h.addReviewUseCase.Execute(c.Request.Context(), appreview.AddReviewRequest{
		BookID:  id,
		UserID:  middleware.MustGetUserID(c),
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
