// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// NewsletterRepository 邮件订阅仓储
type NewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建邮件订阅仓储
func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{db: db}
}

// Create 创建订阅记录
func (r *NewsletterRepository) Create(ctx context.Context, subscriber *models.NewsletterSubscriber) error {
	return r.db.WithContext(ctx).Create(subscriber).Error
}

// GetByEmail 根据邮箱获取订阅记录
func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&subscriber).Error
	if err != nil {
		return nil, err
	}
	return &subscriber, nil
}

// Resubscribe 恢复订阅
func (r *NewsletterRepository) Resubscribe(ctx context.Context, email string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"is_subscribed":   true,
			"subscribed_at":   at,
			"unsubscribed_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Unsubscribe 取消订阅
func (r *NewsletterRepository) Unsubscribe(ctx context.Context, email string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("email = ? AND is_subscribed = ?", email, true).
		Updates(map[string]interface{}{
			"is_subscribed":   false,
			"unsubscribed_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List 获取订阅列表
func (r *NewsletterRepository) List(ctx context.Context, offset, limit int, subscribed *bool) ([]*models.NewsletterSubscriber, int64, error) {
	var subscribers []*models.NewsletterSubscriber
	var total int64

	query := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{})
	if subscribed != nil {
		query = query.Where("is_subscribed = ?", *subscribed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).
		Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}

	return subscribers, total, nil
}

// CountSubscribed 统计有效订阅数
func (r *NewsletterRepository) CountSubscribed(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.NewsletterSubscriber{}).
		Where("is_subscribed = ?", true).
		Count(&count).Error
	return count, err
}
