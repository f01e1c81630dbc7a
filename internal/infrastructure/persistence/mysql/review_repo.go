package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/review"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reviewRepository 评论仓储实现(MySQL)
// (book_id,user_id)唯一索引在数据库层兜底"一人一书一评"
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评论仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评论
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrDuplicateReview
		}
		return apperrors.Wrap(err, "创建评论失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

// ExistsByBookAndUser 检查用户是否已评论过该图书
func (r *reviewRepository) ExistsByBookAndUser(ctx context.Context, bookID, userID uint) (bool, error) {
	var count int64
	err := dbFromContext(ctx, r.db).Model(&ReviewModel{}).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		Count(&count).Error

	if err != nil {
		return false, apperrors.Wrap(err, "查询评论失败")
	}
	return count > 0, nil
}

// ListByBook 查询图书的全部评论(按时间倒序)
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := dbFromContext(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评论列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		Date:      model.Date,
		CreatedAt: model.CreatedAt,
	}
}

// toReviewModel 领域实体 → GORM模型
func toReviewModel(r *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:      r.ID,
		BookID:  r.BookID,
		UserID:  r.UserID,
		Rating:  r.Rating,
		Comment: r.Comment,
		Date:    r.Date,
	}
}
