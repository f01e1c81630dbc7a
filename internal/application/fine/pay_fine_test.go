package fine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/notification"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

type fakeFineRepo struct {
	fines map[uint]*fine.Fine
}

func (f *fakeFineRepo) Create(_ context.Context, fi *fine.Fine) error {
	f.fines[fi.ID] = fi
	return nil
}

func (f *fakeFineRepo) FindByID(_ context.Context, id uint) (*fine.Fine, error) {
	fi, ok := f.fines[id]
	if !ok {
		return nil, fine.ErrFineNotFound
	}
	return fi, nil
}

func (f *fakeFineRepo) Update(_ context.Context, fi *fine.Fine) error {
	f.fines[fi.ID] = fi
	return nil
}

func (f *fakeFineRepo) ListByUserID(_ context.Context, userID uint, _, _ int) ([]*fine.Fine, int64, error) {
	out := make([]*fine.Fine, 0)
	for _, fi := range f.fines {
		if fi.UserID == userID {
			out = append(out, fi)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeFineRepo) List(_ context.Context, _, _ int) ([]*fine.Fine, int64, error) {
	out := make([]*fine.Fine, 0, len(f.fines))
	for _, fi := range f.fines {
		out = append(out, fi)
	}
	return out, int64(len(out)), nil
}

type fakeNotificationRepo struct {
	notifications []*notification.Notification
	createErr     error
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(context.Context, uint) (*notification.Notification, error) {
	return nil, notification.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) Update(context.Context, *notification.Notification) error { return nil }

func (f *fakeNotificationRepo) ListByUserID(context.Context, uint, int, int) ([]*notification.Notification, int64, error) {
	return nil, 0, nil
}

func newPayFixture(t *testing.T) (*PayFineUseCase, *fakeFineRepo, *fakeNotificationRepo, *fine.Fine) {
	t.Helper()
	f := fine.NewFine(1, 10, 300, "逾期归还6天", time.Now())
	f.ID = 1
	fineRepo := &fakeFineRepo{fines: map[uint]*fine.Fine{1: f}}
	notificationRepo := &fakeNotificationRepo{}
	return NewPayFineUseCase(fineRepo, notificationRepo, zap.NewNop()), fineRepo, notificationRepo, f
}

// TestPayFineUseCase 测试支付罚款用例
func TestPayFineUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("首次支付成功", func(t *testing.T) {
		uc, fineRepo, notificationRepo, f := newPayFixture(t)

		resp, err := uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 1})
		require.NoError(t, err)

		assert.True(t, resp.Paid)
		assert.Equal(t, int64(300), resp.Amount)
		assert.Equal(t, "3.00", resp.AmountEur)
		assert.True(t, fineRepo.fines[f.ID].Paid, "支付状态应持久化")
		assert.NotEmpty(t, notificationRepo.notifications, "支付成功应通知读者")
	})

	t.Run("重复支付失败", func(t *testing.T) {
		uc, _, _, f := newPayFixture(t)

		_, err := uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 1})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 1})
		assert.ErrorIs(t, err, fine.ErrAlreadyPaid)
	})

	t.Run("读者不能支付他人的罚款", func(t *testing.T) {
		uc, fineRepo, _, f := newPayFixture(t)

		_, err := uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 2})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		assert.False(t, fineRepo.fines[f.ID].Paid)
	})

	t.Run("馆员可代读者收款", func(t *testing.T) {
		uc, _, _, f := newPayFixture(t)

		resp, err := uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 99, IsAdmin: true})
		require.NoError(t, err)
		assert.True(t, resp.Paid)
	})

	t.Run("罚款不存在支付失败", func(t *testing.T) {
		uc, _, _, _ := newPayFixture(t)

		_, err := uc.Execute(ctx, PayFineRequest{FineID: 42, UserID: 1})
		assert.ErrorIs(t, err, fine.ErrFineNotFound)
	})

	t.Run("通知写入失败不影响支付", func(t *testing.T) {
		uc, fineRepo, notificationRepo, f := newPayFixture(t)
		notificationRepo.createErr = errors.New("db down")

		resp, err := uc.Execute(ctx, PayFineRequest{FineID: f.ID, UserID: 1})
		require.NoError(t, err, "通知只是尽力而为,失败不回滚支付")
		assert.True(t, resp.Paid)
		assert.True(t, fineRepo.fines[f.ID].Paid)
	})
}
