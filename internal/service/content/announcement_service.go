// Package content 提供公告与邮件订阅服务
package content

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// AnnouncementService 公告服务
type AnnouncementService struct {
	announcementRepo *repository.AnnouncementRepository
}

// NewAnnouncementService 创建公告服务
func NewAnnouncementService(announcementRepo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{announcementRepo: announcementRepo}
}

// AnnouncementRequest 公告创建/更新请求
type AnnouncementRequest struct {
	Message   string `json:"message" binding:"required,max=500"`
	Priority  int    `json:"priority" binding:"omitempty,min=0"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// CreateAnnouncement 创建公告
func (s *AnnouncementService) CreateAnnouncement(ctx context.Context, req *AnnouncementRequest) (*models.Announcement, error) {
	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		Message:   req.Message,
		Priority:  req.Priority,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.AnnouncementStatusActive,
	}
	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return announcement, nil
}

// GetAnnouncement 获取公告详情
func (s *AnnouncementService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAnnouncementNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return announcement, nil
}

// ListAnnouncements 获取公告列表（管理端）
func (s *AnnouncementService) ListAnnouncements(ctx context.Context, page, pageSize int, status string) ([]*models.Announcement, int64, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	announcements, total, err := s.announcementRepo.List(ctx, (page-1)*pageSize, pageSize, status)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return announcements, total, nil
}

// ListActiveAnnouncements 获取当前生效的公告（用户端，按优先级排序）
func (s *AnnouncementService) ListActiveAnnouncements(ctx context.Context) ([]*models.Announcement, error) {
	announcements, err := s.announcementRepo.ListActive(ctx, time.Now())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return announcements, nil
}

// UpdateAnnouncement 更新公告
func (s *AnnouncementService) UpdateAnnouncement(ctx context.Context, id int64, req *AnnouncementRequest) (*models.Announcement, error) {
	if _, err := s.GetAnnouncement(ctx, id); err != nil {
		return nil, err
	}

	startDate, endDate, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"message":    req.Message,
		"priority":   req.Priority,
		"start_date": startDate,
		"end_date":   endDate,
	}
	if err := s.announcementRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetAnnouncement(ctx, id)
}

// ToggleAnnouncement 启用/停用公告，已过期公告不允许重新启用
func (s *AnnouncementService) ToggleAnnouncement(ctx context.Context, id int64, active bool) error {
	announcement, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return err
	}

	if active && announcement.Expired(time.Now()) {
		return errors.ErrAnnouncementExpired
	}

	status := models.AnnouncementStatusInactive
	if active {
		status = models.AnnouncementStatusActive
	}
	if err := s.announcementRepo.SetStatus(ctx, id, status); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAnnouncementNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// DeleteAnnouncement 删除公告
func (s *AnnouncementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if _, err := s.GetAnnouncement(ctx, id); err != nil {
		return err
	}
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// DeactivateExpired 停用已过期的公告，返回停用数量
func (s *AnnouncementService) DeactivateExpired(ctx context.Context) (int64, error) {
	count, err := s.announcementRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	return count, nil
}

// parseDateRange 解析并校验日期范围
func parseDateRange(start, end string) (time.Time, time.Time, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, errors.ErrDateRangeInvalid
	}
	return startDate, endDate, nil
}

// parseDate 解析日期，纯日期按当日零点计
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrInvalidParams.WithMessage("日期格式无效")
}
