package notification

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 通知领域错误定义
var (
	// ErrNotificationNotFound 通知不存在
	ErrNotificationNotFound = apperrors.New(apperrors.ErrCodeNotificationMissing, "通知不存在")
)
