// Package models 定义数据模型
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// User 用户模型
type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"type:varchar(50);not null" json:"name"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone        *string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	Role         string     `gorm:"type:varchar(10);not null;default:'client'" json:"role"`
	Status       string     `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Addresses []Address `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	Reviews   []Review  `gorm:"foreignKey:UserID" json:"reviews,omitempty"`
}

// TableName 表名
func (User) TableName() string {
	return "users"
}

// UserRole 用户角色
const (
	RoleAdmin  = "admin"  // 管理员
	RoleClient = "client" // 客户
)

// UserStatus 用户状态
const (
	UserStatusActive  = "active"  // 正常
	UserStatusBlocked = "blocked" // 冻结
	UserStatusBanned  = "banned"  // 封禁
)

// Address 用户收货地址
type Address struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"index;not null" json:"user_id"`
	ReceiverName  string    `gorm:"type:varchar(50);not null" json:"receiver_name"`
	ReceiverPhone string    `gorm:"type:varchar(20);not null" json:"receiver_phone"`
	Province      string    `gorm:"type:varchar(50);not null" json:"province"`
	City          string    `gorm:"type:varchar(50);not null" json:"city"`
	District      string    `gorm:"type:varchar(50);not null" json:"district"`
	Detail        string    `gorm:"type:varchar(255);not null" json:"detail"`
	PostalCode    *string   `gorm:"type:varchar(10)" json:"postal_code,omitempty"`
	IsDefault     bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 表名
func (Address) TableName() string {
	return "addresses"
}

// JSON 自定义 JSON 类型
type JSON map[string]interface{}

// Scan 实现 sql.Scanner 接口
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, j)
}

// Value 实现 driver.Valuer 接口
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// StringList 字符串列表，按 JSON 数组存储
type StringList []string

// Scan 实现 sql.Scanner 接口
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, l)
}

// Value 实现 driver.Valuer 接口
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Contains 判断列表中是否包含指定值
func (l StringList) Contains(s string) bool {
	for _, v := range l {
		if v == s {
			return true
		}
	}
	return false
}
