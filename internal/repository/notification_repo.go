// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// NotificationRepository 后台通知仓储
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建后台通知仓储
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create 创建通知
func (r *NotificationRepository) Create(ctx context.Context, notification *models.AdminNotification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// CreateDedup 创建通知并抑制重复
// 同一事务内检查相同类型、相同去重键的通知是否已存在（since 非空时仅检查该时刻之后），
// 已存在则跳过，返回是否实际写入
func (r *NotificationRepository) CreateDedup(ctx context.Context, notification *models.AdminNotification, since *time.Time) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if notification.DedupKey != nil {
			query := tx.Model(&models.AdminNotification{}).
				Where("type = ? AND dedup_key = ?", notification.Type, *notification.DedupKey)
			if since != nil {
				query = query.Where("created_at >= ?", *since)
			}

			var count int64
			if err := query.Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return nil
			}
		}

		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// GetByID 根据 ID 获取通知
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.AdminNotification, error) {
	var notification models.AdminNotification
	err := r.db.WithContext(ctx).First(&notification, id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// List 获取通知列表
func (r *NotificationRepository) List(ctx context.Context, offset, limit int, notifyType string, isRead *bool) ([]*models.AdminNotification, int64, error) {
	var notifications []*models.AdminNotification
	var total int64

	query := r.db.WithContext(ctx).Model(&models.AdminNotification{})

	if notifyType != "" {
		query = query.Where("type = ?", notifyType)
	}
	if isRead != nil {
		query = query.Where("is_read = ?", *isRead)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("id DESC").Offset(offset).Limit(limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// MarkAsRead 标记通知已读
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkAllAsRead 标记全部通知已读
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}

// Delete 删除通知
func (r *NotificationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.AdminNotification{}, id).Error
}

// CountUnread 统计未读通知数
func (r *NotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AdminNotification{}).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// DeleteReadBefore 清理指定时间之前的已读通知
func (r *NotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.AdminNotification{})
	return result.RowsAffected, result.Error
}
