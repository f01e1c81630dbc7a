package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestObserveCirculation 测试借阅操作计数
func TestObserveCirculation(t *testing.T) {
	m := New()

	m.ObserveCirculation("borrow", nil)
	m.ObserveCirculation("borrow", nil)
	m.ObserveCirculation("borrow", errors.New("boom"))
	m.ObserveCirculation("return", nil)

	if got := testutil.ToFloat64(m.circulationOpsTotal.WithLabelValues("borrow", "ok")); got != 2 {
		t.Errorf("borrow/ok计数错误: expected=2, got=%f", got)
	}
	if got := testutil.ToFloat64(m.circulationOpsTotal.WithLabelValues("borrow", "error")); got != 1 {
		t.Errorf("borrow/error计数错误: expected=1, got=%f", got)
	}
	if got := testutil.ToFloat64(m.circulationOpsTotal.WithLabelValues("return", "ok")); got != 1 {
		t.Errorf("return/ok计数错误: expected=1, got=%f", got)
	}
}

// TestObserveFine 测试罚款指标
func TestObserveFine(t *testing.T) {
	m := New()

	m.ObserveFine(300)
	m.ObserveFine(50)

	if got := testutil.ToFloat64(m.finesIssuedTotal); got != 2 {
		t.Errorf("罚款笔数错误: expected=2, got=%f", got)
	}
	if got := testutil.ToFloat64(m.fineAmountCents); got != 350 {
		t.Errorf("罚款金额错误: expected=350, got=%f", got)
	}
}

// TestNew_IsolatedRegistry 测试各实例Registry相互隔离
func TestNew_IsolatedRegistry(t *testing.T) {
	m1 := New()
	m2 := New()

	m1.ObserveCirculation("borrow", nil)

	if got := testutil.ToFloat64(m2.circulationOpsTotal.WithLabelValues("borrow", "ok")); got != 0 {
		t.Errorf("实例间指标应隔离: expected=0, got=%f", got)
	}
}
