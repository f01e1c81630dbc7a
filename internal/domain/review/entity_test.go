package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewReview 测试评论创建与评分边界
func TestNewReview(t *testing.T) {
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("评分1-5均合法", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			r, err := NewReview(1, 2, rating, "不错", now)
			require.NoError(t, err)
			assert.Equal(t, rating, r.Rating)
		}
	})

	t.Run("评分越界被拒绝", func(t *testing.T) {
		for _, rating := range []int{0, -1, 6, 100} {
			_, err := NewReview(1, 2, rating, "", now)
			assert.ErrorIs(t, err, ErrInvalidRating, "评分%d应被拒绝", rating)
		}
	})
}

// TestAverageRating 测试评论均分计算
func TestAverageRating(t *testing.T) {
	now := time.Now()
	mk := func(ratings ...int) []*Review {
		reviews := make([]*Review, 0, len(ratings))
		for _, r := range ratings {
			review, _ := NewReview(1, 2, r, "", now)
			reviews = append(reviews, review)
		}
		return reviews
	}

	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"无评论为0", nil, 0},
		{"单条评论", []int{4}, 4.0},
		{"整除均分", []int{4, 2}, 3.0},
		{"保留一位小数", []int{5, 4, 4}, 4.3},
		{"四舍五入", []int{4, 3}, 3.5},
		{"三条不整除", []int{5, 5, 4}, 4.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AverageRating(mk(tt.ratings...)), 0.001)
		})
	}
}
