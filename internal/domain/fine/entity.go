package fine

import (
	"time"
)

// Fine 罚款记录实体(聚合根)
// DDD设计说明:
// 1. 金额使用int64存储"欧分"为单位(避免浮点数精度问题)
// 2. 罚款只在逾期归还时产生,金额是逾期天数的确定性函数
// 3. 已支付的罚款不可变:不能重复支付,也不能撤销支付
type Fine struct {
	ID            uint
	UserID        uint   // 读者用户ID
	ReservationID uint   // 产生罚款的借阅记录ID
	Amount        int64  // 金额(欧分,1欧元=100欧分)
	Reason        string // 罚款原因
	Paid          bool   // 是否已支付
	Date          time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewFine 创建罚款记录(工厂方法)
func NewFine(userID, reservationID uint, amount int64, reason string, date time.Time) *Fine {
	return &Fine{
		UserID:        userID,
		ReservationID: reservationID,
		Amount:        amount,
		Reason:        reason,
		Paid:          false,
		Date:          date,
		CreatedAt:     date,
		UpdatedAt:     date,
	}
}

// Pay 支付罚款(领域行为)
// 业务规则:已支付的罚款再次支付必须失败,而非静默成功
func (f *Fine) Pay() error {
	if f.Paid {
		return ErrAlreadyPaid
	}
	f.Paid = true
	f.UpdatedAt = time.Now()
	return nil
}
