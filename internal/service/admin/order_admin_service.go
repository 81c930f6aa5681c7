package admin

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// OrderAdminService 订单管理服务
type OrderAdminService struct {
	orderRepo        *repository.OrderRepository
	staleCutoffHours int
}

// NewOrderAdminService 创建订单管理服务
func NewOrderAdminService(orderRepo *repository.OrderRepository, staleCutoffHours int) *OrderAdminService {
	if staleCutoffHours <= 0 {
		staleCutoffHours = 24
	}
	return &OrderAdminService{
		orderRepo:        orderRepo,
		staleCutoffHours: staleCutoffHours,
	}
}

// OrderAdminListRequest 订单列表请求（管理端）
type OrderAdminListRequest struct {
	Page          int    `form:"page" binding:"omitempty,min=1"`
	PageSize      int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	UserID        int64  `form:"user_id"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	OrderNo       string `form:"order_no"`
	StartTime     string `form:"start_time"`
	EndTime       string `form:"end_time"`
}

// ListOrders 订单列表（管理端）
func (s *OrderAdminService) ListOrders(ctx context.Context, req *OrderAdminListRequest) ([]*models.Order, int64, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	params := repository.OrderListParams{
		Offset:        (req.Page - 1) * req.PageSize,
		Limit:         req.PageSize,
		UserID:        req.UserID,
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
		OrderNo:       req.OrderNo,
	}
	if req.StartTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.StartTime, time.Local); err == nil {
			params.StartTime = &t
		}
	}
	if req.EndTime != "" {
		if t, err := time.ParseInLocation("2006-01-02", req.EndTime, time.Local); err == nil {
			end := t.AddDate(0, 0, 1)
			params.EndTime = &end
		}
	}

	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return orders, total, nil
}

// GetOrder 获取订单详情
func (s *OrderAdminService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return order, nil
}

// UpdateOrderStatus 更新订单状态
func (s *OrderAdminService) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	if !models.ValidOrderStatuses[status] {
		return errors.ErrOrderStatusError
	}

	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusCancelled {
		return errors.ErrOrderCancelled
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	metrics.GetMetrics().RecordOrder(status)
	logger.Info("订单状态已更新",
		logger.Module("admin"),
		logger.OrderNo(order.OrderNo),
		logger.Action(status),
	)
	return nil
}

// CleanupStaleOrders 立即清理长期未完成支付的订单
func (s *OrderAdminService) CleanupStaleOrders(ctx context.Context) (int64, error) {
	cutoff := time.Now().Add(-time.Duration(s.staleCutoffHours) * time.Hour)
	deleted, err := s.orderRepo.DeleteStalePending(ctx, cutoff)
	if err != nil {
		return 0, errors.ErrDatabaseError.WithError(err)
	}

	if deleted > 0 {
		metrics.GetMetrics().RecordStaleOrdersCleaned(int(deleted))
		logger.Info("过期订单已清理", logger.Module("admin"), logger.Int64("deleted", deleted))
	}
	return deleted, nil
}
