package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	// RoleAdmin 馆员/管理员:管理目录、查看全部借阅
	RoleAdmin Role = "admin"
	// RolePatron 读者:检索目录、借还图书、支付罚款
	RolePatron Role = "patron"
)

// IsValid 角色是否合法
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RolePatron
}

// User 用户实体(聚合根)
// DDD设计说明:
// 1. 密码已加密存储(bcrypt),不应该有GetPassword()等方法暴露明文
// 2. 领域实体不依赖GORM tag(infrastructure层的Repository实现时会处理映射)
type User struct {
	ID        uint
	Username  string // 登录名(唯一)
	Password  string // bcrypt哈希值
	Name      string // 姓名
	Email     string
	Phone     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword, name, email, phone string, role Role) *User {
	now := time.Now()
	return &User{
		Username:  username,
		Password:  hashedPassword,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否为馆员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
