package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBook 测试新书入馆
func TestNewBook(t *testing.T) {
	b := NewBook("978-0134190440", "The Go Programming Language", "Alan Donovan", "编程",
		3, "Go语言圣经", "", "A区3排", "英语", 2015)

	assert.Equal(t, 3, b.TotalCopies, "总副本数应为3")
	assert.Equal(t, 3, b.AvailableCopies, "入馆时可借副本数应等于总副本数")
	assert.Equal(t, float64(0), b.Rating, "新书评分应为0")
}

// TestBook_CheckOut 测试借出副本
func TestBook_CheckOut(t *testing.T) {
	t.Run("有副本时借出扣减1册", func(t *testing.T) {
		b := NewBook("isbn-1", "书A", "作者A", "编程", 2, "", "", "", "中文", 2020)

		require.NoError(t, b.CheckOut())
		assert.Equal(t, 1, b.AvailableCopies, "借出一册后剩1册")

		require.NoError(t, b.CheckOut())
		assert.Equal(t, 0, b.AvailableCopies, "再借一册后剩0册")
	})

	t.Run("无副本时借出失败", func(t *testing.T) {
		b := NewBook("isbn-2", "书B", "作者B", "编程", 1, "", "", "", "中文", 2020)
		require.NoError(t, b.CheckOut())

		err := b.CheckOut()
		assert.ErrorIs(t, err, ErrNoCopiesAvailable, "无可借副本应返回ErrNoCopiesAvailable")
		assert.Equal(t, 0, b.AvailableCopies, "失败不应改变台账")
	})
}

// TestBook_CheckIn 测试归还副本
func TestBook_CheckIn(t *testing.T) {
	t.Run("归还释放1册", func(t *testing.T) {
		b := NewBook("isbn-3", "书C", "作者C", "编程", 2, "", "", "", "中文", 2020)
		require.NoError(t, b.CheckOut())

		require.NoError(t, b.CheckIn())
		assert.Equal(t, 2, b.AvailableCopies)
	})

	t.Run("可借数已满时归还失败", func(t *testing.T) {
		b := NewBook("isbn-4", "书D", "作者D", "编程", 2, "", "", "", "中文", 2020)

		err := b.CheckIn()
		assert.ErrorIs(t, err, ErrCopyCountInvariant, "可借数不能超过总数")
		assert.Equal(t, 2, b.AvailableCopies)
	})
}

// TestBook_SetCopies 测试馆员调整副本台账
func TestBook_SetCopies(t *testing.T) {
	b := NewBook("isbn-5", "书E", "作者E", "编程", 3, "", "", "", "中文", 2020)

	tests := []struct {
		name      string
		total     int
		available int
		wantErr   bool
	}{
		{"合法调整", 5, 4, false},
		{"可借等于总数", 5, 5, false},
		{"可借为0", 5, 0, false},
		{"总数为0非法", 0, 0, true},
		{"可借为负非法", 3, -1, true},
		{"可借超过总数非法", 3, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.SetCopies(tt.total, tt.available)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCopyCounts)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.total, b.TotalCopies)
				assert.Equal(t, tt.available, b.AvailableCopies)
			}
		})
	}
}
