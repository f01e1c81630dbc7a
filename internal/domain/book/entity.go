package book

import (
	"time"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. Book是图书聚合的根实体,持有馆藏副本台账(TotalCopies/AvailableCopies)
// 2. 副本台账不变式: 0 <= AvailableCopies <= TotalCopies,由CheckOut/CheckIn/SetCopies保证
// 3. ISBN作为业务唯一标识(数据库层保证唯一性)
// 4. Rating是派生字段(评论均分,保留一位小数),只由评论聚合重算后写入
type Book struct {
	ID              uint
	ISBN            string  // ISBN号(国际标准书号)
	Title           string  // 书名
	Author          string  // 作者
	Category        string  // 分类
	TotalCopies     int     // 馆藏总副本数
	AvailableCopies int     // 可借副本数
	Rating          float64 // 评分(0-5,一位小数,由评论重算)
	Description     string  // 图书描述
	CoverURL        string  // 封面图片URL
	PublishYear     int     // 出版年份
	Location        string  // 馆藏位置(如A区3排)
	Language        string  // 语言
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBook 创建新图书(工厂方法)
// 业务规则:新书入馆时可借副本数等于总副本数
func NewBook(isbn, title, author, category string, totalCopies int, description, coverURL, location, language string, publishYear int) *Book {
	now := time.Now()
	return &Book{
		ISBN:            isbn,
		Title:           title,
		Author:          author,
		Category:        category,
		TotalCopies:     totalCopies,
		AvailableCopies: totalCopies,
		Rating:          0,
		Description:     description,
		CoverURL:        coverURL,
		PublishYear:     publishYear,
		Location:        location,
		Language:        language,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CheckOut 借出一册(领域行为)
// 业务规则:无可借副本时失败;每次借出恰好扣减1册
func (b *Book) CheckOut() error {
	if b.AvailableCopies <= 0 {
		return ErrNoCopiesAvailable
	}
	b.AvailableCopies--
	b.UpdatedAt = time.Now()
	return nil
}

// CheckIn 归还一册(领域行为)
// 业务规则:可借副本数不能超过总副本数
// 正常调用纪律下不会触发上限(防御性检查)
func (b *Book) CheckIn() error {
	if b.AvailableCopies >= b.TotalCopies {
		return ErrCopyCountInvariant
	}
	b.AvailableCopies++
	b.UpdatedAt = time.Now()
	return nil
}

// SetCopies 调整副本台账(馆员编辑路径)
// 业务规则:总副本数>=1,0<=可借副本数<=总副本数
func (b *Book) SetCopies(total, available int) error {
	if total < 1 || available < 0 || available > total {
		return ErrInvalidCopyCounts
	}
	b.TotalCopies = total
	b.AvailableCopies = available
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateRating 更新评分(仅由评论聚合重算后调用)
func (b *Book) UpdateRating(rating float64) {
	b.Rating = rating
	b.UpdatedAt = time.Now()
}

// UpdateInfo 更新图书基本信息
func (b *Book) UpdateInfo(title, author, category, description, location, language string, publishYear int) {
	if title != "" {
		b.Title = title
	}
	if author != "" {
		b.Author = author
	}
	if category != "" {
		b.Category = category
	}
	if description != "" {
		b.Description = description
	}
	if location != "" {
		b.Location = location
	}
	if language != "" {
		b.Language = language
	}
	if publishYear != 0 {
		b.PublishYear = publishYear
	}
	b.UpdatedAt = time.Now()
}
