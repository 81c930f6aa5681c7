package models

import (
	"time"
)

// Coupon 优惠券模型
type Coupon struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code         string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Type         string    `gorm:"type:varchar(20);not null" json:"type"`
	Value        float64   `gorm:"type:decimal(10,2);not null" json:"value"`
	MinAmount    float64   `gorm:"type:decimal(10,2);not null;default:0" json:"min_amount"`
	MaxDiscount  *float64  `gorm:"type:decimal(10,2)" json:"max_discount,omitempty"`
	StartTime    time.Time `gorm:"not null" json:"start_time"`
	EndTime      time.Time `gorm:"not null;index" json:"end_time"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	UsedCount    int       `gorm:"not null;default:0" json:"used_count"`
	PerUserLimit int       `gorm:"not null;default:1" json:"per_user_limit"`
	Description  *string   `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Usages []CouponUsage `gorm:"foreignKey:CouponID" json:"usages,omitempty"`
}

// TableName 表名
func (Coupon) TableName() string {
	return "coupons"
}

// CouponType 优惠券类型
const (
	CouponTypeFixed   = "fixed"   // 固定金额
	CouponTypePercent = "percent" // 百分比折扣
)

// ValidAt 判断优惠券在指定时刻是否可用
func (c *Coupon) ValidAt(now time.Time) bool {
	return c.IsActive && !now.Before(c.StartTime) && now.Before(c.EndTime)
}

// Discount 计算对指定订单金额的折扣
func (c *Coupon) Discount(amount float64) float64 {
	var discount float64
	switch c.Type {
	case CouponTypePercent:
		discount = amount * c.Value / 100
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	default:
		discount = c.Value
	}
	if discount > amount {
		discount = amount
	}
	return discount
}

// CouponUsage 优惠券使用记录（券 × 用户 × 订单）
type CouponUsage struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CouponID int64     `gorm:"index;not null" json:"coupon_id"`
	UserID   int64     `gorm:"index;not null" json:"user_id"`
	OrderID  int64     `gorm:"not null" json:"order_id"`
	UsedAt   time.Time `gorm:"autoCreateTime" json:"used_at"`

	// 关联
	Coupon *Coupon `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	User   *User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Order  *Order  `gorm:"foreignKey:OrderID" json:"order,omitempty"`
}

// TableName 表名
func (CouponUsage) TableName() string {
	return "coupon_usages"
}
