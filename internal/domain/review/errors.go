package review

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 评论领域错误定义
var (
	// ErrDuplicateReview 同一用户对同一本书重复评论
	ErrDuplicateReview = apperrors.New(apperrors.ErrCodeDuplicateReview, "您已评论过此书")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1-5之间")
)
