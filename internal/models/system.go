package models

import (
	"time"
)

// AdminNotification 后台通知
// DedupKey 标识通知指向的业务对象（如 product:3），用于重复抑制
type AdminNotification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      string    `gorm:"type:varchar(30);not null;index" json:"type"`
	Title     string    `gorm:"type:varchar(100);not null" json:"title"`
	Message   string    `gorm:"type:varchar(500);not null" json:"message"`
	DedupKey  *string   `gorm:"type:varchar(100);index" json:"dedup_key,omitempty"`
	IsRead    bool      `gorm:"not null;default:false;index" json:"is_read"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 表名
func (AdminNotification) TableName() string {
	return "admin_notifications"
}

// NotificationType 通知类型
const (
	NotificationTypeLowStock             = "low_stock"             // 低库存
	NotificationTypeExpiringCoupon       = "expiring_coupon"       // 优惠券即将过期
	NotificationTypeExpiringAnnouncement = "expiring_announcement" // 公告即将过期
	NotificationTypeExpiringDeal         = "expiring_deal"         // 特惠即将结束
	NotificationTypeNewOrder             = "new_order"             // 新订单
	NotificationTypeNewSubscriber        = "new_subscriber"        // 新邮件订阅
	NotificationTypeNewRegistration      = "new_registration"      // 新注册用户
)

// DailyVisit 每日访问统计
type DailyVisit struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	VisitDate  time.Time  `gorm:"uniqueIndex;not null" json:"visit_date"`
	VisitorIDs StringList `gorm:"type:jsonb" json:"visitor_ids,omitempty"`
	Count      int        `gorm:"not null;default:0" json:"count"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (DailyVisit) TableName() string {
	return "daily_visits"
}
