// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// CouponRepository 优惠券仓储
type CouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓储
func NewCouponRepository(db *gorm.DB) *CouponRepository {
	return &CouponRepository{db: db}
}

// Create 创建优惠券
func (r *CouponRepository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// GetByID 根据 ID 获取优惠券
func (r *CouponRepository) GetByID(ctx context.Context, id int64) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).First(&coupon, id).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// GetByCode 根据券码获取优惠券
func (r *CouponRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// CouponListParams 优惠券列表查询参数
type CouponListParams struct {
	Offset   int
	Limit    int
	Keyword  string // 匹配券码或名称
	IsActive *bool
	Type     string
}

// List 获取优惠券列表
func (r *CouponRepository) List(ctx context.Context, params CouponListParams) ([]*models.Coupon, int64, error) {
	var coupons []*models.Coupon
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Coupon{})

	if params.Keyword != "" {
		query = query.Where("code LIKE ? OR name LIKE ?", "%"+params.Keyword+"%", "%"+params.Keyword+"%")
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	if params.Type != "" {
		query = query.Where("type = ?", params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(params.Offset).Limit(params.Limit).Find(&coupons).Error; err != nil {
		return nil, 0, err
	}

	return coupons, total, nil
}

// ListAvailable 获取当前可用的优惠券
func (r *CouponRepository) ListAvailable(ctx context.Context, now time.Time) ([]*models.Coupon, error) {
	var coupons []*models.Coupon
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("start_time <= ? AND end_time > ?", now, now).
		Order("end_time ASC").
		Find(&coupons).Error
	return coupons, err
}

// ListExpiringBetween 获取将在指定区间内过期的启用优惠券
func (r *CouponRepository) ListExpiringBetween(ctx context.Context, now, until time.Time) ([]*models.Coupon, error) {
	var coupons []*models.Coupon
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("end_time > ? AND end_time <= ?", now, until).
		Order("end_time ASC").
		Find(&coupons).Error
	return coupons, err
}

// Update 更新优惠券
func (r *CouponRepository) Update(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// UpdateFields 更新指定字段
func (r *CouponRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Coupon{}).Where("id = ?", id).Updates(fields).Error
}

// SetActive 设置优惠券启停状态
func (r *CouponRepository) SetActive(ctx context.Context, id int64, active bool) error {
	result := r.db.WithContext(ctx).Model(&models.Coupon{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除优惠券
func (r *CouponRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, id).Error
}

// ExistsByCode 检查券码是否存在
func (r *CouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Coupon{}).Where("code = ?", code).Count(&count).Error
	return count > 0, err
}

// CountUsageByUser 统计用户使用某券的次数
func (r *CouponRepository) CountUsageByUser(ctx context.Context, couponID, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.CouponUsage{}).
		Where("coupon_id = ? AND user_id = ?", couponID, userID).
		Count(&count).Error
	return count, err
}

// RecordUsage 记录优惠券使用
// 同一事务内写入使用记录并累加使用次数
func (r *CouponRepository) RecordUsage(ctx context.Context, usage *models.CouponUsage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(usage).Error; err != nil {
			return err
		}
		return tx.Model(&models.Coupon{}).
			Where("id = ?", usage.CouponID).
			UpdateColumn("used_count", gorm.Expr("used_count + 1")).
			Error
	})
}

// ListUsages 获取优惠券使用记录
func (r *CouponRepository) ListUsages(ctx context.Context, couponID int64, offset, limit int) ([]*models.CouponUsage, int64, error) {
	var usages []*models.CouponUsage
	var total int64

	query := r.db.WithContext(ctx).Model(&models.CouponUsage{}).Where("coupon_id = ?", couponID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("id DESC").Offset(offset).Limit(limit).
		Find(&usages).Error; err != nil {
		return nil, 0, err
	}

	return usages, total, nil
}
