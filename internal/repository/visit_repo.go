// Package repository 提供数据访问层
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// VisitRepository 访问统计仓储
type VisitRepository struct {
	db *gorm.DB
}

// NewVisitRepository 创建访问统计仓储
func NewVisitRepository(db *gorm.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Record 记录访客当日访问
// 同一访客同一天只计一次，返回是否实际计数
func (r *VisitRepository) Record(ctx context.Context, date time.Time, visitorID string) (bool, error) {
	counted := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var visit models.DailyVisit
		err := tx.Set("gorm:query_option", "FOR UPDATE").
			Where("visit_date = ?", date).
			First(&visit).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			visit = models.DailyVisit{
				VisitDate:  date,
				VisitorIDs: models.StringList{visitorID},
				Count:      1,
			}
			if err := tx.Create(&visit).Error; err != nil {
				return err
			}
			counted = true
			return nil
		}
		if err != nil {
			return err
		}

		if visit.VisitorIDs.Contains(visitorID) {
			return nil
		}

		visit.VisitorIDs = append(visit.VisitorIDs, visitorID)
		visit.Count++
		if err := tx.Save(&visit).Error; err != nil {
			return err
		}
		counted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return counted, nil
}

// GetByDate 获取指定日期的访问统计
func (r *VisitRepository) GetByDate(ctx context.Context, date time.Time) (*models.DailyVisit, error) {
	var visit models.DailyVisit
	err := r.db.WithContext(ctx).Where("visit_date = ?", date).First(&visit).Error
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

// ListRange 获取日期区间内的访问统计
func (r *VisitRepository) ListRange(ctx context.Context, start, end time.Time) ([]*models.DailyVisit, error) {
	var visits []*models.DailyVisit
	err := r.db.WithContext(ctx).
		Where("visit_date >= ? AND visit_date <= ?", start, end).
		Order("visit_date ASC").
		Find(&visits).Error
	return visits, err
}

// TotalCount 统计日期区间内的总访问量
func (r *VisitRepository) TotalCount(ctx context.Context, start, end time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.DailyVisit{}).
		Where("visit_date >= ? AND visit_date <= ?", start, end).
		Select("COALESCE(SUM(count), 0)").
		Scan(&total).Error
	return total, err
}
