package reservation

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrReservationNotFound 借阅记录不存在
	ErrReservationNotFound = apperrors.New(apperrors.ErrCodeReservationNotFound, "借阅记录不存在")

	// ErrInvalidTransition 非法的状态转换
	ErrInvalidTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "借阅状态不允许此操作")

	// ErrRenewalLimitExceeded 续借次数已达上限
	ErrRenewalLimitExceeded = apperrors.New(apperrors.ErrCodeRenewalLimit, "续借次数已达上限(最多2次)")

	// ErrDuplicateActiveReservation 同一用户对同一本书已有在借记录
	ErrDuplicateActiveReservation = apperrors.New(apperrors.ErrCodeDuplicateActiveLoan, "您已借阅此书,归还前不能重复借阅")

	// ErrNotOverdue 未到应还日,不能标记逾期
	ErrNotOverdue = apperrors.New(apperrors.ErrCodeBusinessError, "该借阅记录未过应还日")
)
