package fine

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 罚款领域错误定义
var (
	// ErrFineNotFound 罚款记录不存在
	ErrFineNotFound = apperrors.New(apperrors.ErrCodeFineNotFound, "罚款记录不存在")

	// ErrAlreadyPaid 罚款已支付
	ErrAlreadyPaid = apperrors.New(apperrors.ErrCodeFineAlreadyPaid, "该罚款已支付,不能重复支付")
)
