// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// AnnouncementRepository 公告仓储
type AnnouncementRepository struct {
	db *gorm.DB
}

// NewAnnouncementRepository 创建公告仓储
func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create 创建公告
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Create(announcement).Error
}

// GetByID 根据 ID 获取公告
func (r *AnnouncementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	var announcement models.Announcement
	err := r.db.WithContext(ctx).First(&announcement, id).Error
	if err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List 获取公告列表
func (r *AnnouncementRepository) List(ctx context.Context, offset, limit int, status string) ([]*models.Announcement, int64, error) {
	var announcements []*models.Announcement
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Announcement{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("priority DESC, id DESC").Offset(offset).Limit(limit).
		Find(&announcements).Error; err != nil {
		return nil, 0, err
	}

	return announcements, total, nil
}

// ListActive 获取当前展示中的公告
func (r *AnnouncementRepository) ListActive(ctx context.Context, now time.Time) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := r.db.WithContext(ctx).
		Where("status = ?", models.AnnouncementStatusActive).
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("priority DESC, id DESC").
		Find(&announcements).Error
	return announcements, err
}

// ListExpiringBetween 获取将在指定区间内到期的生效公告
func (r *AnnouncementRepository) ListExpiringBetween(ctx context.Context, now, until time.Time) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := r.db.WithContext(ctx).
		Where("status = ?", models.AnnouncementStatusActive).
		Where("end_date > ? AND end_date <= ?", now, until).
		Order("end_date ASC").
		Find(&announcements).Error
	return announcements, err
}

// Update 更新公告
func (r *AnnouncementRepository) Update(ctx context.Context, announcement *models.Announcement) error {
	return r.db.WithContext(ctx).Save(announcement).Error
}

// UpdateFields 更新指定字段
func (r *AnnouncementRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Announcement{}).Where("id = ?", id).Updates(fields).Error
}

// SetStatus 设置公告状态
func (r *AnnouncementRepository) SetStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除公告
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Announcement{}, id).Error
}

// DeactivateExpired 批量停用已过期的公告，返回停用数量
func (r *AnnouncementRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Announcement{}).
		Where("status = ? AND end_date < ?", models.AnnouncementStatusActive, now).
		Update("status", models.AnnouncementStatusInactive)
	return result.RowsAffected, result.Error
}
