package fine

// DefaultRatePerDayCents 默认罚款费率:每天0.50欧元
const DefaultRatePerDayCents int64 = 50

// Calculator 罚款计算器
// 设计说明:
// 1. 纯函数:金额 = 逾期天数 × 日费率,无任何附加乘数
// 2. 无副作用、无隐藏状态,费率在创建时固定(来自配置)
type Calculator struct {
	ratePerDayCents int64
}

// NewCalculator 创建罚款计算器
// ratePerDayCents<=0时使用默认费率
func NewCalculator(ratePerDayCents int64) *Calculator {
	if ratePerDayCents <= 0 {
		ratePerDayCents = DefaultRatePerDayCents
	}
	return &Calculator{ratePerDayCents: ratePerDayCents}
}

// Calculate 计算罚款金额(欧分)
// 规则:daysLate <= 0 返回0
func (c *Calculator) Calculate(daysLate int) int64 {
	if daysLate <= 0 {
		return 0
	}
	return int64(daysLate) * c.ratePerDayCents
}

// RatePerDay 当前日费率(欧分)
func (c *Calculator) RatePerDay() int64 {
	return c.ratePerDayCents
}
