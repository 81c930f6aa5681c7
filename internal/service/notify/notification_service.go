package notify

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// NotificationService 后台通知查询与管理服务
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
}

// NewNotificationService 创建通知管理服务
func NewNotificationService(notificationRepo *repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotificationListRequest 通知列表请求
type NotificationListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Type     string `form:"type"`
	IsRead   *bool  `form:"is_read"`
}

// NotificationListResponse 通知列表响应
type NotificationListResponse struct {
	List        []*models.AdminNotification `json:"list"`
	Total       int64                       `json:"total"`
	UnreadCount int64                       `json:"unread_count"`
}

// ListNotifications 获取通知列表
func (s *NotificationService) ListNotifications(ctx context.Context, req *NotificationListRequest) (*NotificationListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	notifications, total, err := s.notificationRepo.List(ctx, (req.Page-1)*req.PageSize, req.PageSize, req.Type, req.IsRead)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	unread, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &NotificationListResponse{
		List:        notifications,
		Total:       total,
		UnreadCount: unread,
	}, nil
}

// MarkAsRead 标记单条通知已读
func (s *NotificationService) MarkAsRead(ctx context.Context, id int64) error {
	if err := s.notificationRepo.MarkAsRead(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotificationNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// MarkAllAsRead 标记全部已读
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// DeleteNotification 删除通知
func (s *NotificationService) DeleteNotification(ctx context.Context, id int64) error {
	if err := s.notificationRepo.Delete(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotificationNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// CountUnread 未读通知数
func (s *NotificationService) CountUnread(ctx context.Context) (int64, error) {
	count, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	return count, nil
}
