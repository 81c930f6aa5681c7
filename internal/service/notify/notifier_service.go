// Package notify 提供后台通知发射服务
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// NotifierService 通知发射器，负责生成去重后的后台通知
type NotifierService struct {
	notificationRepo *repository.NotificationRepository
	dedupWindow      time.Duration // 低库存通知的重复抑制窗口
}

// NewNotifierService 创建通知发射器
func NewNotifierService(notificationRepo *repository.NotificationRepository, dedupWindow time.Duration) *NotifierService {
	return &NotifierService{
		notificationRepo: notificationRepo,
		dedupWindow:      dedupWindow,
	}
}

// EmitLowStock 发射低库存通知，窗口期内同一商品只通知一次
func (s *NotifierService) EmitLowStock(ctx context.Context, product *models.Product, threshold int) (bool, error) {
	dedupKey := fmt.Sprintf("product:%d", product.ID)
	since := time.Now().Add(-s.dedupWindow)

	notification := &models.AdminNotification{
		Type:     models.NotificationTypeLowStock,
		Title:    "商品库存不足",
		Message:  fmt.Sprintf("商品「%s」库存仅剩 %d 件，低于阈值 %d", product.Name, product.Stock, threshold),
		DedupKey: &dedupKey,
		Metadata: models.JSON{
			"product_id": product.ID,
			"stock":      product.Stock,
			"threshold":  threshold,
		},
	}
	return s.emit(ctx, notification, &since)
}

// EmitExpiringCoupon 发射优惠券到期提醒，同一张券只提醒一次
func (s *NotifierService) EmitExpiringCoupon(ctx context.Context, coupon *models.Coupon) (bool, error) {
	dedupKey := fmt.Sprintf("coupon:%d", coupon.ID)

	notification := &models.AdminNotification{
		Type:     models.NotificationTypeExpiringCoupon,
		Title:    "优惠券即将过期",
		Message:  fmt.Sprintf("优惠券「%s」（%s）将于 %s 过期", coupon.Name, coupon.Code, coupon.EndTime.Format("2006-01-02 15:04")),
		DedupKey: &dedupKey,
		Metadata: models.JSON{
			"coupon_id": coupon.ID,
			"end_time":  coupon.EndTime,
		},
	}
	return s.emit(ctx, notification, nil)
}

// EmitExpiringAnnouncement 发射公告到期提醒，同一条公告只提醒一次
func (s *NotifierService) EmitExpiringAnnouncement(ctx context.Context, announcement *models.Announcement) (bool, error) {
	dedupKey := fmt.Sprintf("announcement:%d", announcement.ID)

	notification := &models.AdminNotification{
		Type:     models.NotificationTypeExpiringAnnouncement,
		Title:    "公告即将过期",
		Message:  fmt.Sprintf("公告「%s」将于 %s 过期", truncate(announcement.Message, 50), announcement.EndDate.Format("2006-01-02")),
		DedupKey: &dedupKey,
		Metadata: models.JSON{
			"announcement_id": announcement.ID,
			"end_date":        announcement.EndDate,
		},
	}
	return s.emit(ctx, notification, nil)
}

// EmitExpiringDeal 发射限时特惠即将结束提醒，同一商品的同一场特惠只提醒一次
func (s *NotifierService) EmitExpiringDeal(ctx context.Context, product *models.Product) (bool, error) {
	if product.DealEndTime == nil {
		return false, nil
	}
	dedupKey := fmt.Sprintf("deal:%d:%d", product.ID, product.DealEndTime.Unix())

	notification := &models.AdminNotification{
		Type:     models.NotificationTypeExpiringDeal,
		Title:    "限时特惠即将结束",
		Message:  fmt.Sprintf("商品「%s」的限时特惠将于 %s 结束", product.Name, product.DealEndTime.Format("2006-01-02 15:04")),
		DedupKey: &dedupKey,
		Metadata: models.JSON{
			"product_id":    product.ID,
			"deal_end_time": product.DealEndTime,
		},
	}
	return s.emit(ctx, notification, nil)
}

// EmitNewOrder 发射新订单通知，不做去重
func (s *NotifierService) EmitNewOrder(ctx context.Context, order *models.Order) (bool, error) {
	notification := &models.AdminNotification{
		Type:    models.NotificationTypeNewOrder,
		Title:   "新订单",
		Message: fmt.Sprintf("收到新订单 %s，金额 %.2f 元", order.OrderNo, order.ActualAmount),
		Metadata: models.JSON{
			"order_id":      order.ID,
			"order_no":      order.OrderNo,
			"actual_amount": order.ActualAmount,
		},
	}
	return s.emit(ctx, notification, nil)
}

// EmitNewSubscriber 发射新订阅通知，不做去重
func (s *NotifierService) EmitNewSubscriber(ctx context.Context, subscriber *models.NewsletterSubscriber) (bool, error) {
	notification := &models.AdminNotification{
		Type:    models.NotificationTypeNewSubscriber,
		Title:   "新邮件订阅",
		Message: fmt.Sprintf("邮箱 %s 订阅了商城邮件", subscriber.Email),
		Metadata: models.JSON{
			"subscriber_id": subscriber.ID,
			"email":         subscriber.Email,
		},
	}
	return s.emit(ctx, notification, nil)
}

// EmitNewRegistration 发射新注册通知，不做去重
func (s *NotifierService) EmitNewRegistration(ctx context.Context, user *models.User) (bool, error) {
	notification := &models.AdminNotification{
		Type:    models.NotificationTypeNewRegistration,
		Title:   "新注册用户",
		Message: fmt.Sprintf("用户「%s」（%s）完成注册", user.Name, user.Email),
		Metadata: models.JSON{
			"user_id": user.ID,
			"email":   user.Email,
		},
	}
	return s.emit(ctx, notification, nil)
}

// emit 写入通知并记录指标，被去重抑制时返回 false
func (s *NotifierService) emit(ctx context.Context, notification *models.AdminNotification, since *time.Time) (bool, error) {
	created, err := s.notificationRepo.CreateDedup(ctx, notification, since)
	if err != nil {
		return false, errors.ErrDatabaseError.WithError(err)
	}
	if !created {
		return false, nil
	}

	metrics.GetMetrics().RecordNotification(notification.Type)
	logger.Info("后台通知已生成",
		logger.Module("notify"),
		logger.Action(notification.Type),
	)
	return true, nil
}

// truncate 截断过长的文本
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
