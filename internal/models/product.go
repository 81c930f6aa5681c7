package models

import (
	"time"
)

// Category 商品分类
type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ParentID  *int64    `gorm:"index" json:"parent_id,omitempty"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Image     *string   `gorm:"type:varchar(255)" json:"image,omitempty"`
	Sort      int       `gorm:"not null;default:0" json:"sort"`
	Status    int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// TableName 表名
func (Category) TableName() string {
	return "categories"
}

// CategoryStatus 分类状态
const (
	CategoryStatusDisabled = 0 // 禁用
	CategoryStatusActive   = 1 // 启用
)

// Product 商品模型（床品/家纺）
type Product struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64      `gorm:"index;not null" json:"category_id"`
	Name        string     `gorm:"type:varchar(200);not null" json:"name"`
	MainImage   string     `gorm:"type:varchar(255);not null" json:"main_image"`
	Images      StringList `gorm:"type:jsonb" json:"images,omitempty"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Material    *string    `gorm:"type:varchar(100)" json:"material,omitempty"`
	BasePrice   float64    `gorm:"type:decimal(10,2);not null" json:"base_price"`
	Stock       int        `gorm:"not null;default:0" json:"stock"`
	SoldCount   int        `gorm:"not null;default:0" json:"sold_count"`
	ViewCount   int        `gorm:"not null;default:0" json:"view_count"`

	// 营销标记
	IsNewArrival bool `gorm:"not null;default:false" json:"is_new_arrival"`
	IsTop10      bool `gorm:"not null;default:false" json:"is_top10"`
	IsBestSeller bool `gorm:"not null;default:false" json:"is_best_seller"`
	IsLimited    bool `gorm:"not null;default:false" json:"is_limited"`

	// 限时特惠窗口（过期或售罄后由巡检任务清空，单向转换）
	IsLimitedTimeDeal bool       `gorm:"not null;default:false" json:"is_limited_time_deal"`
	DealPrice         *float64   `gorm:"type:decimal(10,2)" json:"deal_price,omitempty"`
	DealStartTime     *time.Time `json:"deal_start_time,omitempty"`
	DealEndTime       *time.Time `gorm:"index" json:"deal_end_time,omitempty"`
	DealQuantityLimit *int       `json:"deal_quantity_limit,omitempty"`

	Status    int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Sizes    []ProductSize `gorm:"foreignKey:ProductID" json:"sizes,omitempty"`
	Reviews  []Review      `gorm:"foreignKey:ProductID" json:"reviews,omitempty"`
}

// TableName 表名
func (Product) TableName() string {
	return "products"
}

// ProductStatus 商品状态
const (
	ProductStatusDraft   = 0 // 草稿
	ProductStatusOnSale  = 1 // 上架
	ProductStatusOffSale = 2 // 下架
)

// CurrentPrice 返回当前生效价格（特惠窗口内返回特惠价）
func (p *Product) CurrentPrice(now time.Time) float64 {
	if p.DealActive(now) && p.DealPrice != nil {
		return *p.DealPrice
	}
	return p.BasePrice
}

// DealActive 判断特惠窗口此刻是否生效
func (p *Product) DealActive(now time.Time) bool {
	if !p.IsLimitedTimeDeal {
		return false
	}
	if p.DealStartTime != nil && now.Before(*p.DealStartTime) {
		return false
	}
	if p.DealEndTime != nil && !now.Before(*p.DealEndTime) {
		return false
	}
	return true
}

// ProductSize 商品尺码（变体），拥有独立的价格、库存与特惠窗口
type ProductSize struct {
	ID        int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64   `gorm:"index;not null" json:"product_id"`
	Name      string  `gorm:"type:varchar(50);not null" json:"name"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int     `gorm:"not null;default:0" json:"stock"`
	SoldCount int     `gorm:"not null;default:0" json:"sold_count"`

	IsLimitedTimeDeal bool       `gorm:"not null;default:false" json:"is_limited_time_deal"`
	DealPrice         *float64   `gorm:"type:decimal(10,2)" json:"deal_price,omitempty"`
	DealStartTime     *time.Time `json:"deal_start_time,omitempty"`
	DealEndTime       *time.Time `gorm:"index" json:"deal_end_time,omitempty"`
	DealQuantityLimit *int       `json:"deal_quantity_limit,omitempty"`

	Status    int8      `gorm:"type:smallint;not null;default:1" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 表名
func (ProductSize) TableName() string {
	return "product_sizes"
}

// SizeStatus 尺码状态
const (
	SizeStatusDisabled = 0 // 禁用
	SizeStatusActive   = 1 // 启用
)

// CurrentPrice 返回当前生效价格
func (s *ProductSize) CurrentPrice(now time.Time) float64 {
	if s.IsLimitedTimeDeal && s.DealPrice != nil {
		if s.DealStartTime != nil && now.Before(*s.DealStartTime) {
			return s.Price
		}
		if s.DealEndTime != nil && !now.Before(*s.DealEndTime) {
			return s.Price
		}
		return *s.DealPrice
	}
	return s.Price
}

// Review 商品评价
type Review struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64      `gorm:"index;not null" json:"product_id"`
	UserID     int64      `gorm:"index;not null" json:"user_id"`
	OrderID    *int64     `json:"order_id,omitempty"`
	Rating     int        `gorm:"not null" json:"rating"`
	Content    *string    `gorm:"type:text" json:"content,omitempty"`
	Images     StringList `gorm:"type:jsonb" json:"images,omitempty"`
	IsVisible  bool       `gorm:"not null;default:true" json:"is_visible"`
	IsFeatured bool       `gorm:"not null;default:false" json:"is_featured"`
	AdminNote  *string    `gorm:"type:varchar(255)" json:"admin_note,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// 关联
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 表名
func (Review) TableName() string {
	return "reviews"
}
