package models

import (
	"time"
)

// Order 订单模型
type Order struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNo        string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`
	UserID         int64      `gorm:"index;not null" json:"user_id"`
	Status         string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus  string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	PaymentMode    *string    `gorm:"type:varchar(20)" json:"payment_mode,omitempty"`
	TransactionID  *string    `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	TotalAmount    float64    `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	DiscountAmount float64    `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	ActualAmount   float64    `gorm:"type:decimal(12,2);not null" json:"actual_amount"`
	CouponID       *int64     `json:"coupon_id,omitempty"`
	AddressID      *int64     `json:"address_id,omitempty"`
	Remark         *string    `gorm:"type:varchar(255)" json:"remark,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	ShippedAt      *time.Time `json:"shipped_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CancelledAt    *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	User    *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Coupon  *Coupon     `gorm:"foreignKey:CouponID" json:"coupon,omitempty"`
	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 表名
func (Order) TableName() string {
	return "orders"
}

// OrderStatus 订单状态
const (
	OrderStatusPending   = "pending"   // 待确认
	OrderStatusConfirmed = "confirmed" // 已确认
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCompleted = "completed" // 已完成
	OrderStatusCancelled = "cancelled" // 已取消
)

// PaymentStatus 支付状态
const (
	PaymentStatusPending   = "pending"   // 待支付
	PaymentStatusCompleted = "completed" // 已支付
	PaymentStatusFailed    = "failed"    // 支付失败
	PaymentStatusRefunded  = "refunded"  // 已退款
)

// ValidOrderStatuses 订单状态集合（用于输入校验）
var ValidOrderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusConfirmed: true,
	OrderStatusShipped:   true,
	OrderStatusDelivered: true,
	OrderStatusCompleted: true,
	OrderStatusCancelled: true,
}

// OrderItem 订单项
type OrderItem struct {
	ID          int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64   `gorm:"index;not null" json:"order_id"`
	ProductID   int64   `gorm:"not null" json:"product_id"`
	SizeID      *int64  `json:"size_id,omitempty"`
	ProductName string  `gorm:"type:varchar(200);not null" json:"product_name"`
	SizeName    *string `gorm:"type:varchar(50)" json:"size_name,omitempty"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	TotalAmount float64 `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	// 关联
	Order   *Order       `gorm:"foreignKey:OrderID" json:"order,omitempty"`
	Product *Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Size    *ProductSize `gorm:"foreignKey:SizeID" json:"size,omitempty"`
}

// TableName 表名
func (OrderItem) TableName() string {
	return "order_items"
}
