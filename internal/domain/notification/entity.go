package notification

import (
	"time"
)

// Type 通知类型
// 设计说明:使用类型化枚举而非自由字符串
type Type int

const (
	TypeInfo    Type = 1 // 普通信息
	TypeSuccess Type = 2 // 成功提示
	TypeWarning Type = 3 // 警告(如临近应还日)
	TypeError   Type = 4 // 错误(如逾期罚款)
)

// String 实现Stringer接口
func (t Type) String() string {
	switch t {
	case TypeInfo:
		return "info"
	case TypeSuccess:
		return "success"
	case TypeWarning:
		return "warning"
	case TypeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notification 通知实体
// 借阅引擎只产生通知,展示与消费由上层负责
type Notification struct {
	ID        uint
	UserID    uint   // 接收用户ID
	Message   string // 通知内容
	Type      Type   // 通知类型
	Read      bool   // 是否已读
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNotification 创建通知(工厂方法)
func NewNotification(userID uint, message string, t Type, date time.Time) *Notification {
	return &Notification{
		UserID:    userID,
		Message:   message,
		Type:      t,
		Read:      false,
		Date:      date,
		CreatedAt: date,
		UpdatedAt: date,
	}
}

// MarkRead 标记已读(领域行为,幂等)
func (n *Notification) MarkRead() {
	n.Read = true
	n.UpdatedAt = time.Now()
}
