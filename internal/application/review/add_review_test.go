package review

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

type fakeTxManager struct{}

func (fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	invalidated []uint
}

func (f *fakeCache) Invalidate(_ context.Context, id uint) error {
	f.invalidated = append(f.invalidated, id)
	return nil
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func (f *fakeBookRepo) Create(context.Context, *book.Book) error { return nil }
func (f *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (f *fakeBookRepo) FindByISBN(context.Context, string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (f *fakeBookRepo) Update(context.Context, *book.Book) error { return nil }
func (f *fakeBookRepo) Delete(context.Context, uint) error       { return nil }
func (f *fakeBookRepo) List(context.Context, book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookRepo) ListAll(context.Context) ([]*book.Book, error) { return nil, nil }
func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return f.FindByID(ctx, id)
}
func (f *fakeBookRepo) UpdateAvailable(context.Context, uint, int) error { return nil }
func (f *fakeBookRepo) UpdateRating(_ context.Context, id uint, rating float64) error {
	b, ok := f.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Rating = rating
	return nil
}

type fakeReviewRepo struct {
	reviews []*review.Review
	nextID  uint
}

func (f *fakeReviewRepo) Create(_ context.Context, r *review.Review) error {
	f.nextID++
	r.ID = f.nextID
	f.reviews = append(f.reviews, r)
	return nil
}

func (f *fakeReviewRepo) ExistsByBookAndUser(_ context.Context, bookID, userID uint) (bool, error) {
	for _, r := range f.reviews {
		if r.BookID == bookID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReviewRepo) ListByBook(_ context.Context, bookID uint) ([]*review.Review, error) {
	out := make([]*review.Review, 0)
	for _, r := range f.reviews {
		if r.BookID == bookID {
			out = append(out, r)
		}
	}
	return out, nil
}

func newFixture() (*AddReviewUseCase, *fakeBookRepo, *fakeReviewRepo, *fakeCache) {
	b := book.NewBook("9787115428028", "测试图书", "作者", "编程", 1, "", "", "", "中文", 2020)
	b.ID = 1
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{1: b}}
	reviewRepo := &fakeReviewRepo{}
	cache := &fakeCache{}
	uc := NewAddReviewUseCase(reviewRepo, bookRepo, fakeTxManager{}, cache, zap.NewNop())
	return uc, bookRepo, reviewRepo, cache
}

// TestAddReviewUseCase 测试发表评论用例
func TestAddReviewUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("首条评论写入并回写评分", func(t *testing.T) {
		uc, bookRepo, _, cache := newFixture()

		resp, err := uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 10, Rating: 4, Comment: "不错"})
		require.NoError(t, err)

		assert.NotZero(t, resp.ReviewID)
		assert.InDelta(t, 4.0, resp.BookRating, 0.001)
		assert.InDelta(t, 4.0, bookRepo.books[1].Rating, 0.001, "图书评分应被回写")
		assert.Contains(t, cache.invalidated, uint(1), "评分变化后应失效详情缓存")
	})

	t.Run("多条评论取均分保留一位小数", func(t *testing.T) {
		uc, bookRepo, _, _ := newFixture()

		_, err := uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 10, Rating: 5})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 11, Rating: 5})
		require.NoError(t, err)
		resp, err := uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 12, Rating: 4})
		require.NoError(t, err)

		assert.InDelta(t, 4.7, resp.BookRating, 0.001)
		assert.InDelta(t, 4.7, bookRepo.books[1].Rating, 0.001)
	})

	t.Run("同一读者不能重复评论同一本书", func(t *testing.T) {
		uc, _, reviewRepo, _ := newFixture()

		_, err := uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 10, Rating: 4})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 10, Rating: 5})
		assert.ErrorIs(t, err, review.ErrDuplicateReview)
		assert.Len(t, reviewRepo.reviews, 1, "重复评论不应写入")
	})

	t.Run("评分越界被拒绝", func(t *testing.T) {
		uc, _, reviewRepo, _ := newFixture()

		for _, rating := range []int{0, 6} {
			_, err := uc.Execute(ctx, AddReviewRequest{BookID: 1, UserID: 10, Rating: rating})
			assert.ErrorIs(t, err, review.ErrInvalidRating)
		}
		assert.Empty(t, reviewRepo.reviews)
	})

	t.Run("图书不存在评论失败", func(t *testing.T) {
		uc, _, _, _ := newFixture()

		_, err := uc.Execute(ctx, AddReviewRequest{BookID: 99, UserID: 10, Rating: 4})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

// TestAddReviewUseCase_Timestamp 评论时间取当前时间
func TestAddReviewUseCase_Timestamp(t *testing.T) {
	uc, _, reviewRepo, _ := newFixture()
	before := time.Now()

	_, err := uc.Execute(context.Background(), AddReviewRequest{BookID: 1, UserID: 10, Rating: 3})
	require.NoError(t, err)

	require.Len(t, reviewRepo.reviews, 1)
	assert.False(t, reviewRepo.reviews[0].Date.Before(before))
}
