package scheduler

import (
	"context"
	"time"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/config"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	"github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	productRepo      *repository.ProductRepository
	orderRepo        *repository.OrderRepository
	couponRepo       *repository.CouponRepository
	announcementRepo *repository.AnnouncementRepository
	notifier         *notify.NotifierService
	business         *config.BusinessConfig

	lastLowStockCheck time.Time
}

// NewTaskHandler 创建任务处理器
func NewTaskHandler(
	productRepo *repository.ProductRepository,
	orderRepo *repository.OrderRepository,
	couponRepo *repository.CouponRepository,
	announcementRepo *repository.AnnouncementRepository,
	notifier *notify.NotifierService,
	business *config.BusinessConfig,
) *TaskHandler {
	return &TaskHandler{
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		couponRepo:       couponRepo,
		announcementRepo: announcementRepo,
		notifier:         notifier,
		business:         business,
	}
}

// ExpireDeals 清理已到期或售罄的限时特惠
func (h *TaskHandler) ExpireDeals(ctx context.Context) error {
	products, sizes, err := h.productRepo.DeactivateExpiredDeals(ctx, time.Now())
	if err != nil {
		return err
	}

	total := products + sizes
	if total > 0 {
		metrics.GetMetrics().RecordDealsExpired(int(total))
		logger.Info("过期特惠已清理",
			logger.Module("scheduler"),
			logger.Int64("products", products),
			logger.Int64("sizes", sizes),
		)
	}
	return nil
}

// DeactivateExpiredAnnouncements 停用已过期的公告
func (h *TaskHandler) DeactivateExpiredAnnouncements(ctx context.Context) error {
	count, err := h.announcementRepo.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return err
	}
	if count > 0 {
		logger.Info("过期公告已停用", logger.Module("scheduler"), logger.Int64("count", count))
	}
	return nil
}

// CleanupStaleOrders 删除长期未完成支付的订单
func (h *TaskHandler) CleanupStaleOrders(ctx context.Context) error {
	cutoffHours := h.business.Order.StaleCutoffHours
	if cutoffHours <= 0 {
		cutoffHours = 24
	}
	cutoff := time.Now().Add(-time.Duration(cutoffHours) * time.Hour)

	deleted, err := h.orderRepo.DeleteStalePending(ctx, cutoff)
	if err != nil {
		return err
	}
	if deleted > 0 {
		metrics.GetMetrics().RecordStaleOrdersCleaned(int(deleted))
		logger.Info("过期订单已清理", logger.Module("scheduler"), logger.Int64("deleted", deleted))
	}
	return nil
}

// NotifyExpiringCoupons 提醒即将过期的优惠券
func (h *TaskHandler) NotifyExpiringCoupons(ctx context.Context) error {
	now := time.Now()
	until := now.Add(h.expiryLookAhead())

	coupons, err := h.couponRepo.ListExpiringBetween(ctx, now, until)
	if err != nil {
		return err
	}
	for _, coupon := range coupons {
		if _, err := h.notifier.EmitExpiringCoupon(ctx, coupon); err != nil {
			logger.Error("优惠券到期提醒失败", logger.Module("scheduler"), logger.CouponID(coupon.ID), logger.Err(err))
		}
	}
	return nil
}

// NotifyExpiringAnnouncements 提醒即将过期的公告
func (h *TaskHandler) NotifyExpiringAnnouncements(ctx context.Context) error {
	now := time.Now()
	until := now.Add(h.expiryLookAhead())

	announcements, err := h.announcementRepo.ListExpiringBetween(ctx, now, until)
	if err != nil {
		return err
	}
	for _, announcement := range announcements {
		if _, err := h.notifier.EmitExpiringAnnouncement(ctx, announcement); err != nil {
			logger.Error("公告到期提醒失败", logger.Module("scheduler"), logger.Int64("announcement_id", announcement.ID), logger.Err(err))
		}
	}
	return nil
}

// NotifyExpiringDeals 提醒即将结束的限时特惠
func (h *TaskHandler) NotifyExpiringDeals(ctx context.Context) error {
	now := time.Now()
	until := now.Add(h.expiryLookAhead())

	products, err := h.productRepo.ListDealsEndingBefore(ctx, now, until)
	if err != nil {
		return err
	}
	for _, product := range products {
		if _, err := h.notifier.EmitExpiringDeal(ctx, product); err != nil {
			logger.Error("特惠到期提醒失败", logger.Module("scheduler"), logger.ProductID(product.ID), logger.Err(err))
		}
	}
	return nil
}

// CheckLowStock 检查低库存商品并生成通知，带节流
func (h *TaskHandler) CheckLowStock(ctx context.Context) error {
	throttle := time.Duration(h.business.Inventory.CheckThrottle) * time.Minute
	if throttle > 0 && time.Since(h.lastLowStockCheck) < throttle {
		return nil
	}
	h.lastLowStockCheck = time.Now()

	threshold := h.business.Inventory.LowStockThreshold
	if threshold <= 0 {
		threshold = 5
	}

	products, err := h.productRepo.ListLowStock(ctx, threshold)
	if err != nil {
		return err
	}
	for _, product := range products {
		if _, err := h.notifier.EmitLowStock(ctx, product, threshold); err != nil {
			logger.Error("低库存提醒失败", logger.Module("scheduler"), logger.ProductID(product.ID), logger.Err(err))
		}
	}
	return nil
}

// expiryLookAhead 到期提醒提前量
func (h *TaskHandler) expiryLookAhead() time.Duration {
	hours := h.business.Notify.ExpiryLookAhead
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// SetupTasks 注册所有后台任务
func SetupTasks(scheduler *Scheduler, handler *TaskHandler) {
	business := handler.business

	cleanupInterval := time.Duration(business.Order.CleanupInterval) * time.Hour
	if cleanupInterval <= 0 {
		cleanupInterval = time.Hour
	}
	scanInterval := time.Duration(business.Notify.ScanInterval) * time.Minute
	if scanInterval <= 0 {
		scanInterval = 30 * time.Minute
	}

	// 公告到期停用每小时跑一次即可
	scheduler.AddTask("DeactivateExpiredAnnouncements", time.Hour, handler.DeactivateExpiredAnnouncements)

	// 过期订单清理
	scheduler.AddTask("CleanupStaleOrders", cleanupInterval, handler.CleanupStaleOrders)

	// 到期提醒
	scheduler.AddTask("NotifyExpiringCoupons", scanInterval, handler.NotifyExpiringCoupons)
	scheduler.AddTask("NotifyExpiringAnnouncements", scanInterval, handler.NotifyExpiringAnnouncements)
	scheduler.AddTask("NotifyExpiringDeals", scanInterval, handler.NotifyExpiringDeals)

	// 低库存检查
	scheduler.AddTask("CheckLowStock", scanInterval, handler.CheckLowStock)
}
