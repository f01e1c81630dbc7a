package book

import (
	"context"
	"regexp"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装目录管理的业务规则校验(ISBN格式、副本数)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 跨聚合的规则(如删除前检查在借记录)由应用层在事务内编排
type Service interface {
	// AddBook 新书入馆
	// 业务规则:
	// - ISBN格式必须合法(10位或13位数字)
	// - ISBN不能重复
	// - 总副本数必须>=1,入馆时可借数=总数
	AddBook(ctx context.Context, isbn, title, author, category string, totalCopies int, description, coverURL, location, language string, publishYear int) (*Book, error)

	// GetBookByID 根据ID获取图书详情
	GetBookByID(ctx context.Context, id uint) (*Book, error)

	// GetBookByISBN 根据ISBN获取图书
	GetBookByISBN(ctx context.Context, isbn string) (*Book, error)

	// UpdateBook 更新图书信息与副本台账
	// 业务规则:副本数调整必须满足 0 <= available <= total 且 total >= 1
	UpdateBook(ctx context.Context, id uint, title, author, category, description, location, language string, publishYear, totalCopies, availableCopies int) (*Book, error)

	// ListBooks 分页查询图书列表(搜索+分类过滤)
	// 公开接口,不需要权限校验
	ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新书入馆
func (s *service) AddBook(ctx context.Context, isbn, title, author, category string, totalCopies int, description, coverURL, location, language string, publishYear int) (*Book, error) {
	// 1. ISBN格式校验
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}

	// 2. 副本数校验
	if totalCopies < 1 {
		return nil, ErrInvalidCopyCounts
	}

	// 3. 检查ISBN是否已存在(数据库唯一索引兜底)
	existing, err := s.repo.FindByISBN(ctx, isbn)
	if err == nil && existing != nil {
		return nil, ErrISBNDuplicate
	}
	if err != nil && err != ErrBookNotFound {
		return nil, err
	}

	// 4. 创建并持久化
	b := NewBook(isbn, title, author, category, totalCopies, description, coverURL, location, language, publishYear)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// GetBookByID 根据ID获取图书
func (s *service) GetBookByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookByISBN 根据ISBN获取图书
func (s *service) GetBookByISBN(ctx context.Context, isbn string) (*Book, error) {
	if !isValidISBN(isbn) {
		return nil, ErrInvalidISBN
	}
	return s.repo.FindByISBN(ctx, isbn)
}

// UpdateBook 更新图书信息与副本台账
func (s *service) UpdateBook(ctx context.Context, id uint, title, author, category, description, location, language string, publishYear, totalCopies, availableCopies int) (*Book, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	b.UpdateInfo(title, author, category, description, location, language, publishYear)

	// 副本台账调整走SetCopies,保证不变式
	if err := b.SetCopies(totalCopies, availableCopies); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Book, int64, error) {
	return s.repo.List(ctx, params)
}

// isValidISBN 校验ISBN格式
// 支持ISBN-10和ISBN-13,允许带分隔符(978-7-115-42802-8)
// 简化实现:只检查位数和是否全为数字(生产环境应校验校验位)
func isValidISBN(isbn string) bool {
	re := regexp.MustCompile(`[^0-9]`)
	cleanISBN := re.ReplaceAllString(isbn, "")

	length := len(cleanISBN)
	return length == 10 || length == 13
}
