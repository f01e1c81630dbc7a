package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate，生产环境应使用版本化迁移脚本）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 说明:AutoMigrate只会创建表、添加字段,不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&BookModel{},
		&ReservationModel{},
		&FineModel{},
		&ReviewModel{},
		&NotificationModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Username  string         `gorm:"uniqueIndex;size:30;not null;comment:登录名"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	Email     string         `gorm:"size:100;comment:邮箱"`
	Phone     string         `gorm:"size:30;comment:电话"`
	Role      string         `gorm:"size:10;not null;default:patron;comment:角色(admin/patron)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,防止重复
// 2. AvailableCopies只由借阅事务修改,台账不变式由UPDATE语句的WHERE条件兜底
// 3. Rating是派生字段,评论写入后重算回写
type BookModel struct {
	ID              uint           `gorm:"primaryKey"`
	ISBN            string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title           string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	Author          string         `gorm:"index:idx_search;size:100;not null;comment:作者"`
	Category        string         `gorm:"index;size:50;comment:分类"`
	TotalCopies     int            `gorm:"not null;comment:总副本数"`
	AvailableCopies int            `gorm:"not null;comment:可借副本数"`
	Rating          float64        `gorm:"default:0;comment:评分(0-5,一位小数)"`
	Description     string         `gorm:"type:text;comment:图书描述"`
	CoverURL        string         `gorm:"size:500;comment:封面图片URL"`
	PublishYear     int            `gorm:"comment:出版年份"`
	Location        string         `gorm:"size:50;comment:馆藏位置"`
	Language        string         `gorm:"size:30;comment:语言"`
	CreatedAt       time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time      `gorm:"comment:更新时间"`
	DeletedAt       gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReservationModel GORM借阅记录模型
// 设计说明:
// 1. Status使用int存储(1在借2已归还3已逾期4已取消)
// 2. (user_id,book_id,status)复合索引支撑"同书在借唯一"校验
// 3. 借阅记录从不删除,不加软删除字段
type ReservationModel struct {
	ID              uint       `gorm:"primaryKey"`
	UserID          uint       `gorm:"index:idx_user_book_status;not null;comment:读者用户ID"`
	BookID          uint       `gorm:"index:idx_user_book_status;index;not null;comment:图书ID"`
	ReservationDate time.Time  `gorm:"not null;comment:借出日期"`
	DueDate         time.Time  `gorm:"index;not null;comment:应还日期"`
	ReturnDate      *time.Time `gorm:"comment:实际归还日期"`
	Status          int        `gorm:"index:idx_user_book_status;type:tinyint;not null;default:1;comment:状态(1在借2已归还3已逾期4已取消)"`
	RenewalCount    int        `gorm:"not null;default:0;comment:续借次数"`
	CreatedAt       time.Time  `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReservationModel) TableName() string {
	return "reservations"
}

// FineModel GORM罚款模型
type FineModel struct {
	ID            uint      `gorm:"primaryKey"`
	UserID        uint      `gorm:"index;not null;comment:读者用户ID"`
	ReservationID uint      `gorm:"index;not null;comment:借阅记录ID"`
	Amount        int64     `gorm:"not null;comment:金额(欧分)"`
	Reason        string    `gorm:"size:200;comment:罚款原因"`
	Paid          bool      `gorm:"not null;default:false;comment:是否已支付"`
	Date          time.Time `gorm:"comment:产生日期"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (FineModel) TableName() string {
	return "fines"
}

// ReviewModel GORM评论模型
// (book_id,user_id)唯一索引保证一人一书一评
type ReviewModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"uniqueIndex:idx_book_user;not null;comment:图书ID"`
	UserID    uint      `gorm:"uniqueIndex:idx_book_user;not null;comment:用户ID"`
	Rating    int       `gorm:"not null;comment:评分(1-5)"`
	Comment   string    `gorm:"type:text;comment:评论内容"`
	Date      time.Time `gorm:"comment:评论日期"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// NotificationModel GORM通知模型
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null;comment:接收用户ID"`
	Message   string    `gorm:"size:500;not null;comment:通知内容"`
	Type      int       `gorm:"type:tinyint;not null;default:1;comment:类型(1info 2success 3warning 4error)"`
	Read      bool      `gorm:"not null;default:false;comment:是否已读"`
	Date      time.Time `gorm:"comment:通知日期"`
	CreatedAt time.Time `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (NotificationModel) TableName() string {
	return "notifications"
}
