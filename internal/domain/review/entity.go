package review

import (
	"math"
	"time"
)

// Review 评论实体(隶属于图书聚合)
// DDD设计说明:
// 1. 评分为1-5的整数,不变式:同一(图书,用户)至多一条评论
// 2. 图书评分(Book.Rating)是全部评论的均分,保留一位小数,由评论写入后重算
type Review struct {
	ID        uint
	BookID    uint   // 所属图书ID
	UserID    uint   // 评论用户ID
	Rating    int    // 评分(1-5整数)
	Comment   string // 评论内容
	Date      time.Time
	CreatedAt time.Time
}

// NewReview 创建评论(工厂方法)
// 业务规则:评分必须在1-5之间
func NewReview(bookID, userID uint, rating int, comment string, date time.Time) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Date:      date,
		CreatedAt: date,
	}, nil
}

// AverageRating 计算评论均分
// 规则:mean(全部评分),四舍五入保留一位小数;无评论返回0
func AverageRating(reviews []*Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum int
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10
}
