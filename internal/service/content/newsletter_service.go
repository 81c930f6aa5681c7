package content

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	"github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
)

// NewsletterService 邮件订阅服务
type NewsletterService struct {
	newsletterRepo *repository.NewsletterRepository
	notifier       *notify.NotifierService // 可为 nil
}

// NewNewsletterService 创建邮件订阅服务
func NewNewsletterService(newsletterRepo *repository.NewsletterRepository, notifier *notify.NotifierService) *NewsletterService {
	return &NewsletterService{newsletterRepo: newsletterRepo, notifier: notifier}
}

// SubscribeRequest 订阅/退订请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,max=100"`
}

// Subscribe 订阅邮件，退订过的邮箱重新激活
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !utils.ValidateEmail(email) {
		return nil, errors.ErrEmailInvalid
	}

	now := time.Now()
	subscriber, err := s.newsletterRepo.GetByEmail(ctx, email)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		subscriber = &models.NewsletterSubscriber{
			Email:        email,
			IsSubscribed: true,
			SubscribedAt: now,
		}
		if err := s.newsletterRepo.Create(ctx, subscriber); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		logger.Info("邮件订阅成功", logger.Module("content"))
		s.notifyNewSubscriber(ctx, subscriber)
		return subscriber, nil
	}

	if subscriber.IsSubscribed {
		return nil, errors.ErrAlreadySubscribed
	}

	if err := s.newsletterRepo.Resubscribe(ctx, email, now); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.getByEmail(ctx, email)
}

// Unsubscribe 退订邮件
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.newsletterRepo.Unsubscribe(ctx, email, time.Now()); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotSubscribed
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// ListSubscribers 获取订阅列表（管理端）
func (s *NewsletterService) ListSubscribers(ctx context.Context, page, pageSize int, subscribed *bool) ([]*models.NewsletterSubscriber, int64, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	subscribers, total, err := s.newsletterRepo.List(ctx, (page-1)*pageSize, pageSize, subscribed)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return subscribers, total, nil
}

// CountSubscribed 当前有效订阅数
func (s *NewsletterService) CountSubscribed(ctx context.Context) (int64, error) {
	count, err := s.newsletterRepo.CountSubscribed(ctx)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}
	return count, nil
}

// notifyNewSubscriber 通知失败不影响订阅结果
func (s *NewsletterService) notifyNewSubscriber(ctx context.Context, subscriber *models.NewsletterSubscriber) {
	if s.notifier == nil {
		return
	}
	if _, err := s.notifier.EmitNewSubscriber(ctx, subscriber); err != nil {
		logger.Warn("新订阅通知发送失败", logger.Module("content"), logger.Err(err))
	}
}

func (s *NewsletterService) getByEmail(ctx context.Context, email string) (*models.NewsletterSubscriber, error) {
	subscriber, err := s.newsletterRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return subscriber, nil
}
