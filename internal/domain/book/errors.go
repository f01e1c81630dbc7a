package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrNoCopiesAvailable 无可借副本
	ErrNoCopiesAvailable = apperrors.New(apperrors.ErrCodeNoCopiesAvailable, "该图书暂无可借副本")

	// ErrInvalidCopyCounts 副本数量不合法
	ErrInvalidCopyCounts = apperrors.New(apperrors.ErrCodeInvalidCopyCounts, "副本数量不合法(可借数不能超过总数且不能为负)")

	// ErrCopyCountInvariant 归还超出总副本数(调用纪律被破坏时的防御性错误)
	ErrCopyCountInvariant = apperrors.New(apperrors.ErrCodeBusinessError, "可借副本数不能超过总副本数")

	// ErrBookInUse 存在在借记录,禁止删除
	ErrBookInUse = apperrors.New(apperrors.ErrCodeBookInUse, "该图书存在在借记录,无法删除")
)
