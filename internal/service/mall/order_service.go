package mall

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	"github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
)

// 订单号前缀
const orderNoPrefix = "HT"

// OrderService 订单服务
type OrderService struct {
	orderRepo   *repository.OrderRepository
	productRepo *repository.ProductRepository
	sizeRepo    *repository.ProductSizeRepository
	addressRepo *repository.AddressRepository
	couponRepo  *repository.CouponRepository
	notifier    *notify.NotifierService // 可为 nil
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	sizeRepo *repository.ProductSizeRepository,
	addressRepo *repository.AddressRepository,
	couponRepo *repository.CouponRepository,
	notifier *notify.NotifierService,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		sizeRepo:    sizeRepo,
		addressRepo: addressRepo,
		couponRepo:  couponRepo,
		notifier:    notifier,
	}
}

// CheckoutItem 下单商品项
type CheckoutItem struct {
	ProductID int64  `json:"product_id" binding:"required"`
	SizeID    *int64 `json:"size_id,omitempty"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest 下单请求
type CheckoutRequest struct {
	Items      []CheckoutItem `json:"items" binding:"required,dive"`
	AddressID  int64          `json:"address_id" binding:"required"`
	CouponCode string         `json:"coupon_code,omitempty"`
	Remark     *string        `json:"remark,omitempty" binding:"omitempty,max=255"`
}

// OrderListRequest 订单列表请求
type OrderListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Status   string `form:"status"`
}

// OrderListResponse 订单列表响应
type OrderListResponse struct {
	List     []*models.Order `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Checkout 下单：校验地址、商品、库存与优惠券后落单
func (s *OrderService) Checkout(ctx context.Context, userID int64, req *CheckoutRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.ErrOrderEmpty
	}

	if _, err := s.addressRepo.GetByIDAndUserID(ctx, req.AddressID, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAddressNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	now := time.Now()
	items := make([]models.OrderItem, 0, len(req.Items))
	var totalAmount float64

	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrProductNotFound
			}
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if product.Status != models.ProductStatusOnSale {
			return nil, errors.ErrProductOffShelf
		}

		orderItem := models.OrderItem{
			ProductID:   item.ProductID,
			SizeID:      item.SizeID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
		}

		if item.SizeID != nil {
			size, err := s.sizeRepo.GetByID(ctx, *item.SizeID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return nil, errors.ErrSizeNotFound
				}
				return nil, errors.ErrDatabaseError.WithError(err)
			}
			if size.ProductID != item.ProductID || size.Status != models.SizeStatusActive {
				return nil, errors.ErrSizeNotFound
			}
			if size.Stock < item.Quantity {
				return nil, errors.ErrStockInsufficient
			}
			sizeName := size.Name
			orderItem.SizeName = &sizeName
			orderItem.UnitPrice = size.CurrentPrice(now)
		} else {
			if product.Stock < item.Quantity {
				return nil, errors.ErrStockInsufficient
			}
			orderItem.UnitPrice = product.CurrentPrice(now)
		}

		orderItem.TotalAmount = round2(orderItem.UnitPrice * float64(item.Quantity))
		totalAmount += orderItem.TotalAmount
		items = append(items, orderItem)
	}
	totalAmount = round2(totalAmount)

	order := &models.Order{
		OrderNo:      utils.GenerateOrderNo(orderNoPrefix),
		UserID:       userID,
		Status:       models.OrderStatusPending,
		TotalAmount:  totalAmount,
		ActualAmount: totalAmount,
		AddressID:    &req.AddressID,
		Remark:       req.Remark,
		Items:        items,
	}

	var usage *models.CouponUsage
	if req.CouponCode != "" {
		coupon, discount, err := s.validateCoupon(ctx, userID, req.CouponCode, totalAmount, now)
		if err != nil {
			return nil, err
		}
		order.CouponID = &coupon.ID
		order.DiscountAmount = discount
		order.ActualAmount = round2(totalAmount - discount)
		usage = &models.CouponUsage{CouponID: coupon.ID, UserID: userID}
	}

	if err := s.orderRepo.CreateWithStock(ctx, order, usage); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrStockInsufficient
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("订单创建成功",
		logger.Module("mall"),
		logger.OrderNo(order.OrderNo),
		logger.UserID(userID),
	)
	metrics.GetMetrics().RecordOrder("created")

	// 通知失败不影响下单结果
	if s.notifier != nil {
		if _, err := s.notifier.EmitNewOrder(ctx, order); err != nil {
			logger.Warn("新订单通知发送失败", logger.Module("mall"), logger.Err(err))
		}
	}
	return order, nil
}

// validateCoupon 校验优惠券并计算折扣
func (s *OrderService) validateCoupon(ctx context.Context, userID int64, code string, amount float64, now time.Time) (*models.Coupon, float64, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, 0, errors.ErrCouponNotFound
		}
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}

	if !coupon.IsActive {
		return nil, 0, errors.ErrCouponInactive
	}
	if now.Before(coupon.StartTime) {
		return nil, 0, errors.ErrCouponNotStarted
	}
	if !now.Before(coupon.EndTime) {
		return nil, 0, errors.ErrCouponExpired
	}
	if amount < coupon.MinAmount {
		return nil, 0, errors.ErrCouponNotApplicable
	}

	used, err := s.couponRepo.CountUsageByUser(ctx, coupon.ID, userID)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	if coupon.PerUserLimit > 0 && used >= int64(coupon.PerUserLimit) {
		return nil, 0, errors.ErrCouponLimitExceed
	}

	return coupon, round2(coupon.Discount(amount)), nil
}

// GetOrder 获取订单详情（含订单项）
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return order, nil
}

// ListOrders 获取用户订单列表
func (s *OrderService) ListOrders(ctx context.Context, userID int64, req *OrderListRequest) (*OrderListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 10
	}

	orders, total, err := s.orderRepo.List(ctx, repository.OrderListParams{
		Offset: (req.Page - 1) * req.PageSize,
		Limit:  req.PageSize,
		UserID: userID,
		Status: req.Status,
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &OrderListResponse{
		List:     orders,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// CancelOrder 取消待确认订单并回补库存
func (s *OrderService) CancelOrder(ctx context.Context, orderID, userID int64) error {
	order, err := s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if order.Status == models.OrderStatusCancelled {
		return errors.ErrOrderCancelled
	}
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return errors.ErrOrderPaid
	}
	if order.Status != models.OrderStatusPending {
		return errors.ErrOrderCannotCancel
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderStatusCancelled); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	// 回补库存；失败仅记录日志，不回滚取消
	for _, item := range order.Items {
		if item.SizeID != nil {
			if err := s.sizeRepo.IncreaseStock(ctx, *item.SizeID, item.Quantity); err != nil {
				logger.Error("取消订单回补尺码库存失败",
					logger.Module("mall"),
					logger.OrderNo(order.OrderNo),
					logger.Err(err),
				)
			}
		}
		if err := s.productRepo.IncreaseStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("取消订单回补商品库存失败",
				logger.Module("mall"),
				logger.OrderNo(order.OrderNo),
				logger.Err(err),
			)
		}
	}

	return nil
}

// PayOrder 标记订单支付完成
func (s *OrderService) PayOrder(ctx context.Context, orderID, userID int64, transactionID string) error {
	order, err := s.orderRepo.GetByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrOrderNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if order.Status == models.OrderStatusCancelled {
		return errors.ErrOrderCancelled
	}
	if order.PaymentStatus == models.PaymentStatusCompleted {
		return errors.ErrOrderPaid
	}

	if err := s.orderRepo.UpdatePayment(ctx, orderID, models.PaymentStatusCompleted, &transactionID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.orderRepo.UpdateStatus(ctx, orderID, models.OrderStatusConfirmed); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GetOrderStatusCounts 各状态订单数（用于个人中心）
func (s *OrderService) GetOrderStatusCounts(ctx context.Context, userID int64) (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return counts, nil
}

// round2 金额保留两位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
