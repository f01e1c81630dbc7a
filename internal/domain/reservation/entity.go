package reservation

import (
	"time"
)

// Status 借阅状态
// 设计说明:
// 1. 使用封闭的类型化枚举而非自由字符串,非法状态不可表示
// 2. 状态值1-4递增,便于理解流转方向
type Status int

const (
	StatusActive    Status = 1 // 在借
	StatusReturned  Status = 2 // 已归还
	StatusExpired   Status = 3 // 已逾期(仍未归还,副本未释放)
	StatusCancelled Status = 4 // 已取消
)

// String 实现Stringer接口(方便日志输出与导出)
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "在借"
	case StatusReturned:
		return "已归还"
	case StatusExpired:
		return "已逾期"
	case StatusCancelled:
		return "已取消"
	default:
		return "未知状态"
	}
}

// 借阅规则常量(默认值,可由配置覆盖)
const (
	// DefaultLoanPeriodDays 默认借期
	DefaultLoanPeriodDays = 14
	// DefaultMaxRenewals 最大续借次数
	DefaultMaxRenewals = 2
	// RenewalExtensionDays 每次续借延长天数(从当前应还日起算,不是从续借当日起算)
	RenewalExtensionDays = 14
)

// Reservation 借阅记录实体(聚合根)
// DDD设计说明:
// 1. 唯一初始状态为Active,状态只能沿转换表流转
// 2. 副本扣减/释放由应用层在同一事务内驱动图书台账完成
// 3. 借阅记录只流转状态,从不删除(保留为历史)
// 4. 不变式:同一(UserID,BookID)至多一条Active记录;RenewalCount<=2;DueDate只延后不提前
type Reservation struct {
	ID              uint
	UserID          uint       // 读者用户ID
	BookID          uint       // 图书ID
	ReservationDate time.Time  // 借出日期
	DueDate         time.Time  // 应还日期
	ReturnDate      *time.Time // 实际归还日期(未归还为nil)
	Status          Status     // 借阅状态
	RenewalCount    int        // 已续借次数(0..2)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewReservation 创建借阅记录(工厂方法)
// 业务规则:应还日期 = 借出日期 + 借期
func NewReservation(userID, bookID uint, reservedAt time.Time, loanPeriodDays int) *Reservation {
	return &Reservation{
		UserID:          userID,
		BookID:          bookID,
		ReservationDate: reservedAt,
		DueDate:         reservedAt.AddDate(0, 0, loanPeriodDays),
		Status:          StatusActive,
		RenewalCount:    0,
		CreatedAt:       reservedAt,
		UpdatedAt:       reservedAt,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// 状态转换表:
// - 在借 → 已归还 / 已取消 / 已逾期
// - 已逾期 → 已归还(书最终被物理归还)
// - 已归还、已取消为终态
func (r *Reservation) CanTransitionTo(target Status) bool {
	transitions := map[Status][]Status{
		StatusActive:    {StatusReturned, StatusCancelled, StatusExpired},
		StatusExpired:   {StatusReturned},
		StatusReturned:  {},
		StatusCancelled: {},
	}

	allowed, exists := transitions[r.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// transitionTo 状态转换(内部方法,先校验转换表)
func (r *Reservation) transitionTo(target Status) error {
	if !r.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}

// Return 归还(领域行为)
// 允许从在借或已逾期归还;副本释放由应用层驱动台账完成
func (r *Reservation) Return(returnedAt time.Time) error {
	if err := r.transitionTo(StatusReturned); err != nil {
		return err
	}
	t := returnedAt
	r.ReturnDate = &t
	return nil
}

// Cancel 取消(领域行为)
// 业务规则:只允许从在借状态取消;取消释放所占副本
func (r *Reservation) Cancel() error {
	if r.Status != StatusActive {
		return ErrInvalidTransition
	}
	return r.transitionTo(StatusCancelled)
}

// Expire 标记逾期(领域行为,由定期扫描触发)
// 业务规则:
// 1. 只有在借且已过应还日的记录才能被标记
// 2. 逾期只是状态标签,不释放副本(书仍在读者手中)
func (r *Reservation) Expire(now time.Time) error {
	if r.Status != StatusActive {
		return ErrInvalidTransition
	}
	if !now.After(r.DueDate) {
		return ErrNotOverdue
	}
	return r.transitionTo(StatusExpired)
}

// Renew 续借(领域行为)
// 业务规则:
// 1. 只有在借状态可以续借
// 2. 续借次数不超过上限(默认2次)
// 3. 应还日期从当前应还日延长,而非从续借当日起算(应还日只延后不提前)
func (r *Reservation) Renew(maxRenewals int) error {
	if r.Status != StatusActive {
		return ErrInvalidTransition
	}
	if r.RenewalCount >= maxRenewals {
		return ErrRenewalLimitExceeded
	}
	r.DueDate = r.DueDate.AddDate(0, 0, RenewalExtensionDays)
	r.RenewalCount++
	r.UpdatedAt = time.Now()
	return nil
}

// DaysLate 计算逾期天数
// 规则:floor((at - 应还日期) / 24h),未逾期返回0
func (r *Reservation) DaysLate(at time.Time) int {
	if !at.After(r.DueDate) {
		return 0
	}
	return int(at.Sub(r.DueDate).Hours() / 24)
}

// IsOverdue 是否已过应还日
func (r *Reservation) IsOverdue(now time.Time) bool {
	return now.After(r.DueDate)
}

// HoldsCopy 当前是否占用副本(归还/取消后不再占用)
// 注意:已逾期仍占用副本,直到实际归还
func (r *Reservation) HoldsCopy() bool {
	return r.Status == StatusActive || r.Status == StatusExpired
}

// IsOwnedBy 检查借阅记录是否属于指定用户
// 权限校验:防止读者操作他人的借阅记录
func (r *Reservation) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}
