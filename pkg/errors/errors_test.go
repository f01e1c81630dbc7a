package errors

import (
	"errors"
	"fmt"
	"testing"
)

// TestAppError_Error 测试错误信息格式
func TestAppError_Error(t *testing.T) {
	e := New(ErrCodeBookNotFound, "图书不存在")
	if e.Error() != "[40402] 图书不存在" {
		t.Errorf("错误信息格式错误: %s", e.Error())
	}

	wrapped := Wrap(errors.New("connection refused"), "数据库错误")
	if wrapped.Code != ErrCodeInternal {
		t.Errorf("Wrap应使用内部错误码: got=%d", wrapped.Code)
	}
}

// TestAppError_Unwrap 测试errors.Is/As穿透
func TestAppError_Unwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	wrapped := Wrap(inner, "数据库错误")

	if !errors.Is(wrapped, inner) {
		t.Error("errors.Is应能穿透到内部错误")
	}

	var appErr *AppError
	if !errors.As(fmt.Errorf("handler: %w", wrapped), &appErr) {
		t.Error("errors.As应能从包装链中提取AppError")
	}
	if appErr.Code != ErrCodeInternal {
		t.Errorf("提取的错误码错误: got=%d", appErr.Code)
	}
}

// TestGetAppError 测试错误提取与兜底包装
func TestGetAppError(t *testing.T) {
	known := New(ErrCodeFineAlreadyPaid, "该罚款已支付")
	if got := GetAppError(known); got.Code != ErrCodeFineAlreadyPaid {
		t.Errorf("已是AppError应原样返回: got=%d", got.Code)
	}

	unknown := errors.New("boom")
	if got := GetAppError(unknown); got.Code != ErrCodeInternal {
		t.Errorf("未知错误应包装为内部错误: got=%d", got.Code)
	}

	if !IsAppError(known) {
		t.Error("IsAppError判断错误")
	}
	if IsAppError(unknown) {
		t.Error("普通error不应是AppError")
	}
}
