package models

import (
	"time"
)

// Announcement 公告模型
type Announcement struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Message   string    `gorm:"type:varchar(500);not null" json:"message"`
	Priority  int       `gorm:"not null;default:0" json:"priority"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Status    string    `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Announcement) TableName() string {
	return "announcements"
}

// AnnouncementStatus 公告状态
const (
	AnnouncementStatusActive   = "active"   // 生效
	AnnouncementStatusInactive = "inactive" // 停用
)

// Expired 判断公告在指定时刻是否已过期
func (a *Announcement) Expired(now time.Time) bool {
	return now.After(a.EndDate)
}

// NewsletterSubscriber 邮件订阅用户
type NewsletterSubscriber struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	IsSubscribed   bool       `gorm:"not null;default:true" json:"is_subscribed"`
	SubscribedAt   time.Time  `gorm:"not null" json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
