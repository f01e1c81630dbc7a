package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/reservation"
	apperrors "github.com/xiebiao/library/pkg/errors"
	"github.com/xiebiao/library/pkg/metrics"
)

// circulationFixture 借阅用例测试环境
type circulationFixture struct {
	bookRepo         *fakeBookRepo
	reservationRepo  *fakeReservationRepo
	fineRepo         *fakeFineRepo
	notificationRepo *fakeNotificationRepo
	cache            *fakeBookCache
	metrics          *metrics.Metrics
	logger           *zap.Logger
}

func newCirculationFixture() *circulationFixture {
	return &circulationFixture{
		bookRepo:         newFakeBookRepo(),
		reservationRepo:  newFakeReservationRepo(),
		fineRepo:         newFakeFineRepo(),
		notificationRepo: &fakeNotificationRepo{},
		cache:            newFakeBookCache(),
		metrics:          metrics.New(),
		logger:           zap.NewNop(),
	}
}

func (fx *circulationFixture) addBook(copies int) *book.Book {
	return fx.bookRepo.add(book.NewBook("isbn-test", "测试图书", "测试作者", "编程",
		copies, "", "", "", "中文", 2020))
}

func (fx *circulationFixture) reserveUseCase() *ReserveBookUseCase {
	return NewReserveBookUseCase(fx.reservationRepo, fx.bookRepo, fakeTxManager{},
		fx.metrics, nil, fx.cache, fx.logger, reservation.DefaultLoanPeriodDays)
}

func (fx *circulationFixture) returnUseCase() *ReturnBookUseCase {
	return NewReturnBookUseCase(fx.reservationRepo, fx.bookRepo, fx.fineRepo, fx.notificationRepo,
		fine.NewCalculator(50), fakeTxManager{}, fx.metrics, nil, fx.cache, fx.logger)
}

func (fx *circulationFixture) cancelUseCase() *CancelReservationUseCase {
	return NewCancelReservationUseCase(fx.reservationRepo, fx.bookRepo, fakeTxManager{},
		fx.metrics, nil, fx.cache, fx.logger)
}

// TestReserveBookUseCase 测试借书用例
func TestReserveBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("正常借书扣减副本", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(2)

		resp, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		assert.NotZero(t, resp.ReservationID)
		assert.Equal(t, "测试图书", resp.BookTitle)
		assert.Equal(t, "在借", resp.Status)
		assert.Equal(t, 1, fx.bookRepo.books[b.ID].AvailableCopies, "借出后可借副本应扣减1")
	})

	t.Run("无可借副本时借书失败", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)
		uc := fx.reserveUseCase()

		_, err := uc.Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ReserveBookRequest{UserID: 2, BookID: b.ID})
		assert.ErrorIs(t, err, book.ErrNoCopiesAvailable)
		assert.Equal(t, 0, fx.bookRepo.books[b.ID].AvailableCopies, "失败不应改变台账")
	})

	t.Run("同一读者不能重复借同一本书", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(5)
		uc := fx.reserveUseCase()

		_, err := uc.Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		assert.ErrorIs(t, err, reservation.ErrDuplicateActiveReservation)
		assert.Equal(t, 4, fx.bookRepo.books[b.ID].AvailableCopies)
	})

	t.Run("归还后可以再次借同一本书", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		resp, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		_, err = fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: resp.ReservationID, UserID: 1})
		require.NoError(t, err)

		_, err = fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		assert.NoError(t, err, "归还后同书可再借")
	})

	t.Run("图书不存在借书失败", func(t *testing.T) {
		fx := newCirculationFixture()
		_, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: 99})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

// TestReturnBookUseCase 测试还书用例
func TestReturnBookUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("按时归还不产生罚款", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		resp, err := fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, "已归还", resp.Status)
		assert.Equal(t, 0, resp.DaysLate)
		assert.Zero(t, resp.FineAmount)
		assert.Equal(t, 1, fx.bookRepo.books[b.ID].AvailableCopies, "归还释放副本")
		assert.Empty(t, fx.fineRepo.fines, "按时归还不应产生罚款")
	})

	t.Run("逾期归还按天数产生罚款", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		// 构造一条20天前借出的在借记录(已逾期6天)
		res := reservation.NewReservation(1, b.ID, time.Now().UTC().AddDate(0, 0, -20), reservation.DefaultLoanPeriodDays)
		require.NoError(t, fx.reservationRepo.Create(ctx, res))
		require.NoError(t, fx.bookRepo.UpdateAvailable(ctx, b.ID, -1))

		resp, err := fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: res.ID, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, 6, resp.DaysLate)
		assert.Equal(t, int64(300), resp.FineAmount, "罚款 = 6天 × 50欧分")
		assert.Equal(t, "3.00", resp.FineAmountEur)
		assert.NotZero(t, resp.FineID)
		require.Len(t, fx.fineRepo.fines, 1)
		assert.False(t, fx.fineRepo.fines[resp.FineID].Paid, "新罚款应为未支付")
		assert.NotEmpty(t, fx.notificationRepo.notifications, "逾期归还应通知读者")
	})

	t.Run("已逾期状态的记录可以归还", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		res := reservation.NewReservation(1, b.ID, time.Now().UTC().AddDate(0, 0, -20), reservation.DefaultLoanPeriodDays)
		require.NoError(t, fx.reservationRepo.Create(ctx, res))
		require.NoError(t, fx.bookRepo.UpdateAvailable(ctx, b.ID, -1))
		require.NoError(t, res.Expire(time.Now()))

		resp, err := fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: res.ID, UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, "已归还", resp.Status)
		assert.Equal(t, 1, fx.bookRepo.books[b.ID].AvailableCopies)
	})

	t.Run("重复归还失败", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		uc := fx.returnUseCase()
		_, err = uc.Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 1})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 1})
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, 1, fx.bookRepo.books[b.ID].AvailableCopies, "重复归还不应重复释放副本")
	})

	t.Run("读者不能归还他人的借阅", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		_, err = fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 2})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("馆员可代读者归还", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		_, err = fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 99, IsAdmin: true})
		assert.NoError(t, err)
	})
}

// TestRenewReservationUseCase 测试续借用例
func TestRenewReservationUseCase(t *testing.T) {
	ctx := context.Background()

	newFixtureWithLoan := func(t *testing.T) (*circulationFixture, *RenewReservationUseCase, uint) {
		fx := newCirculationFixture()
		b := fx.addBook(1)
		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)
		uc := NewRenewReservationUseCase(fx.reservationRepo, fx.metrics, nil, fx.logger, reservation.DefaultMaxRenewals)
		return fx, uc, reserved.ReservationID
	}

	t.Run("续借延长应还日", func(t *testing.T) {
		fx, uc, id := newFixtureWithLoan(t)
		before := fx.reservationRepo.reservations[id].DueDate

		resp, err := uc.Execute(ctx, RenewReservationRequest{ReservationID: id, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.RenewalCount)
		assert.Equal(t, 1, resp.RenewalsLeft)
		assert.Equal(t, before.AddDate(0, 0, 14), fx.reservationRepo.reservations[id].DueDate)
	})

	t.Run("第三次续借被拒绝", func(t *testing.T) {
		_, uc, id := newFixtureWithLoan(t)

		_, err := uc.Execute(ctx, RenewReservationRequest{ReservationID: id, UserID: 1})
		require.NoError(t, err)
		resp, err := uc.Execute(ctx, RenewReservationRequest{ReservationID: id, UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, 0, resp.RenewalsLeft)

		_, err = uc.Execute(ctx, RenewReservationRequest{ReservationID: id, UserID: 1})
		assert.ErrorIs(t, err, reservation.ErrRenewalLimitExceeded)
	})

	t.Run("读者不能续借他人的借阅", func(t *testing.T) {
		_, uc, id := newFixtureWithLoan(t)

		_, err := uc.Execute(ctx, RenewReservationRequest{ReservationID: id, UserID: 2})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

// TestCancelReservationUseCase 测试取消借阅用例
func TestCancelReservationUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("取消释放副本", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)
		require.Equal(t, 0, fx.bookRepo.books[b.ID].AvailableCopies)

		uc := fx.cancelUseCase()
		resp, err := uc.Execute(ctx, CancelReservationRequest{ReservationID: reserved.ReservationID, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, "已取消", resp.Status)
		assert.Equal(t, 1, fx.bookRepo.books[b.ID].AvailableCopies, "取消释放副本")
	})

	t.Run("逾期记录不能取消", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		res := reservation.NewReservation(1, b.ID, time.Now().UTC().AddDate(0, 0, -20), reservation.DefaultLoanPeriodDays)
		require.NoError(t, fx.reservationRepo.Create(ctx, res))
		require.NoError(t, fx.bookRepo.UpdateAvailable(ctx, b.ID, -1))
		require.NoError(t, res.Expire(time.Now()))

		uc := fx.cancelUseCase()
		_, err := uc.Execute(ctx, CancelReservationRequest{ReservationID: res.ID, UserID: 1})
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
		assert.Equal(t, 0, fx.bookRepo.books[b.ID].AvailableCopies, "取消失败不应释放副本")
	})
}

// TestCirculation_InvalidatesBookCache 测试借还取消后失效图书详情缓存
// 缓存的是JSON快照,含可借副本数;台账变化后不失效会在TTL内一直读到旧值
func TestCirculation_InvalidatesBookCache(t *testing.T) {
	ctx := context.Background()

	t.Run("借书后失效缓存", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(2)
		fx.cache.put(b) // 缓存里是借出前的快照(可借2)

		_, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)

		assert.Contains(t, fx.cache.invalidated, b.ID)
		_, cached := fx.cache.snapshots[b.ID]
		assert.False(t, cached, "旧快照应被清除,下次读取回源拿到最新可借数")
	})

	t.Run("还书后失效缓存", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)
		fx.cache.put(fx.bookRepo.books[b.ID]) // 借出后的快照(可借0)
		fx.cache.invalidated = nil

		_, err = fx.returnUseCase().Execute(ctx, ReturnBookRequest{ReservationID: reserved.ReservationID, UserID: 1})
		require.NoError(t, err)

		assert.Contains(t, fx.cache.invalidated, b.ID)
	})

	t.Run("取消后失效缓存", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)

		reserved, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)
		fx.cache.invalidated = nil

		_, err = fx.cancelUseCase().Execute(ctx, CancelReservationRequest{ReservationID: reserved.ReservationID, UserID: 1})
		require.NoError(t, err)

		assert.Contains(t, fx.cache.invalidated, b.ID)
	})

	t.Run("借书失败不失效缓存", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(1)
		_, err := fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 1, BookID: b.ID})
		require.NoError(t, err)
		fx.cache.invalidated = nil

		_, err = fx.reserveUseCase().Execute(ctx, ReserveBookRequest{UserID: 2, BookID: b.ID})
		require.ErrorIs(t, err, book.ErrNoCopiesAvailable)
		assert.Empty(t, fx.cache.invalidated, "事务失败台账未变,无需失效")
	})
}

// TestExpireOverdueUseCase 测试逾期扫描用例
func TestExpireOverdueUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("过应还日的在借记录被标记逾期", func(t *testing.T) {
		fx := newCirculationFixture()
		b := fx.addBook(3)

		// 两条逾期、一条未到期
		overdue1 := reservation.NewReservation(1, b.ID, time.Now().UTC().AddDate(0, 0, -20), reservation.DefaultLoanPeriodDays)
		overdue2 := reservation.NewReservation(2, b.ID, time.Now().UTC().AddDate(0, 0, -16), reservation.DefaultLoanPeriodDays)
		current := reservation.NewReservation(3, b.ID, time.Now(), reservation.DefaultLoanPeriodDays)
		for _, r := range []*reservation.Reservation{overdue1, overdue2, current} {
			require.NoError(t, fx.reservationRepo.Create(ctx, r))
			require.NoError(t, fx.bookRepo.UpdateAvailable(ctx, b.ID, -1))
		}

		uc := NewExpireOverdueUseCase(fx.reservationRepo, fx.notificationRepo, fakeTxManager{}, fx.metrics, nil, fx.logger)
		resp, err := uc.Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, resp.Scanned)
		assert.Equal(t, 2, resp.Expired)
		assert.Equal(t, reservation.StatusExpired, overdue1.Status)
		assert.Equal(t, reservation.StatusExpired, overdue2.Status)
		assert.Equal(t, reservation.StatusActive, current.Status, "未到期记录不受影响")
		assert.Equal(t, 0, fx.bookRepo.books[b.ID].AvailableCopies, "逾期不释放副本")
		assert.Len(t, fx.notificationRepo.notifications, 2, "每条逾期记录通知读者")
	})

	t.Run("无逾期记录时扫描为空", func(t *testing.T) {
		fx := newCirculationFixture()
		uc := NewExpireOverdueUseCase(fx.reservationRepo, fx.notificationRepo, fakeTxManager{}, fx.metrics, nil, fx.logger)

		resp, err := uc.Execute(ctx)
		require.NoError(t, err)
		assert.Zero(t, resp.Scanned)
		assert.Zero(t, resp.Expired)
	})
}
