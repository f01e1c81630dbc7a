package reservation

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/fine"
	"github.com/xiebiao/library/internal/domain/notification"
	"github.com/xiebiao/library/internal/domain/reservation"
)

// 内存仓储实现(测试用)
// 与mysql实现遵守同样的错误约定,用例测试无需真实数据库

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeBookRepo struct {
	books  map[uint]*book.Book
	nextID uint
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[uint]*book.Book), nextID: 1}
}

func (f *fakeBookRepo) add(b *book.Book) *book.Book {
	b.ID = f.nextID
	f.nextID++
	f.books[b.ID] = b
	return b
}

func (f *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	f.add(b)
	return nil
}

// FindByID 返回值拷贝,与mysql实现一致(实体修改不落库,落库只走Update*)
func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookRepo) FindByISBN(_ context.Context, isbn string) (*book.Book, error) {
	for _, b := range f.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, book.ErrBookNotFound
}

func (f *fakeBookRepo) Update(_ context.Context, b *book.Book) error {
	f.books[b.ID] = b
	return nil
}

func (f *fakeBookRepo) Delete(_ context.Context, id uint) error {
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) List(_ context.Context, _ book.ListParams) ([]*book.Book, int64, error) {
	out := make([]*book.Book, 0, len(f.books))
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeBookRepo) ListAll(ctx context.Context) ([]*book.Book, error) {
	out, _, err := f.List(ctx, book.ListParams{})
	return out, err
}

func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeBookRepo) UpdateAvailable(_ context.Context, id uint, delta int) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	next := b.AvailableCopies + delta
	if next < 0 {
		return book.ErrNoCopiesAvailable
	}
	if next > b.TotalCopies {
		return book.ErrCopyCountInvariant
	}
	b.AvailableCopies = next
	return nil
}

func (f *fakeBookRepo) UpdateRating(_ context.Context, id uint, rating float64) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Rating = rating
	return nil
}

// fakeBookCache 图书详情缓存(值拷贝快照,模拟Redis里的JSON)
type fakeBookCache struct {
	snapshots   map[uint]book.Book
	invalidated []uint
}

func newFakeBookCache() *fakeBookCache {
	return &fakeBookCache{snapshots: make(map[uint]book.Book)}
}

func (f *fakeBookCache) put(b *book.Book) {
	f.snapshots[b.ID] = *b
}

func (f *fakeBookCache) Invalidate(_ context.Context, id uint) error {
	delete(f.snapshots, id)
	f.invalidated = append(f.invalidated, id)
	return nil
}

type fakeReservationRepo struct {
	reservations map[uint]*reservation.Reservation
	nextID       uint
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uint]*reservation.Reservation), nextID: 1}
}

func (f *fakeReservationRepo) Create(_ context.Context, r *reservation.Reservation) error {
	r.ID = f.nextID
	f.nextID++
	f.reservations[r.ID] = r
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uint) (*reservation.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservation.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) Update(_ context.Context, r *reservation.Reservation) error {
	f.reservations[r.ID] = r
	return nil
}

func (f *fakeReservationRepo) ExistsActive(_ context.Context, userID, bookID uint) (bool, error) {
	for _, r := range f.reservations {
		if r.UserID == userID && r.BookID == bookID && r.Status == reservation.StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationRepo) CountActiveByBook(_ context.Context, bookID uint) (int64, error) {
	var count int64
	for _, r := range f.reservations {
		if r.BookID == bookID && r.Status == reservation.StatusActive {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationRepo) ListByUserID(_ context.Context, userID uint, _, _ int) ([]*reservation.Reservation, int64, error) {
	out := make([]*reservation.Reservation, 0)
	for _, r := range f.reservations {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReservationRepo) List(_ context.Context, _, _ int) ([]*reservation.Reservation, int64, error) {
	out := make([]*reservation.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		out = append(out, r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeReservationRepo) ListAll(ctx context.Context) ([]*reservation.Reservation, error) {
	out, _, err := f.List(ctx, 1, 0)
	return out, err
}

func (f *fakeReservationRepo) ListOverdueActive(_ context.Context, now time.Time) ([]*reservation.Reservation, error) {
	out := make([]*reservation.Reservation, 0)
	for _, r := range f.reservations {
		if r.Status == reservation.StatusActive && now.After(r.DueDate) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeFineRepo struct {
	fines  map[uint]*fine.Fine
	nextID uint
}

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{fines: make(map[uint]*fine.Fine), nextID: 1}
}

func (f *fakeFineRepo) Create(_ context.Context, fi *fine.Fine) error {
	fi.ID = f.nextID
	f.nextID++
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
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *notification.Notification) error {
	n.ID = uint(len(f.notifications) + 1)
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeNotificationRepo) FindByID(_ context.Context, id uint) (*notification.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, notification.ErrNotificationNotFound
}

func (f *fakeNotificationRepo) Update(_ context.Context, n *notification.Notification) error {
	for i, cur := range f.notifications {
		if cur.ID == n.ID {
			f.notifications[i] = n
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ListByUserID(_ context.Context, userID uint, _, _ int) ([]*notification.Notification, int64, error) {
	out := make([]*notification.Notification, 0)
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}
