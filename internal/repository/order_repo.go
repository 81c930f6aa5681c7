// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// OrderRepository 订单仓储
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create 创建订单（包含订单项）
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CreateWithStock 创建订单并扣减库存
// 同一事务内扣减商品/尺码库存并记录优惠券使用，任一环节失败整体回滚
func (r *OrderRepository) CreateWithStock(ctx context.Context, order *models.Order, usage *models.CouponUsage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for _, item := range order.Items {
			if item.SizeID != nil {
				result := tx.Model(&models.ProductSize{}).
					Where("id = ? AND stock >= ?", *item.SizeID, item.Quantity).
					UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected == 0 {
					return gorm.ErrRecordNotFound
				}
			}

			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}

			if err := tx.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("sold_count", gorm.Expr("sold_count + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}

		if usage != nil {
			usage.OrderID = order.ID
			if err := tx.Create(usage).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Coupon{}).
				Where("id = ?", usage.CouponID).
				UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GetByID 根据 ID 获取订单
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDWithItems 根据 ID 获取订单（包含订单项）
func (r *OrderRepository) GetByIDWithItems(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByOrderNo 根据订单号获取订单
func (r *OrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").Where("order_no = ?", orderNo).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByIDAndUserID 根据 ID 和用户 ID 获取订单
func (r *OrderRepository) GetByIDAndUserID(ctx context.Context, id, userID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update 更新订单
func (r *OrderRepository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// UpdateFields 更新指定字段
func (r *OrderRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateStatus 更新订单状态
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	fields := map[string]interface{}{"status": status}
	now := time.Now()
	switch status {
	case models.OrderStatusShipped:
		fields["shipped_at"] = now
	case models.OrderStatusDelivered:
		fields["delivered_at"] = now
	case models.OrderStatusCancelled:
		fields["cancelled_at"] = now
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// UpdatePayment 更新支付状态
func (r *OrderRepository) UpdatePayment(ctx context.Context, id int64, paymentStatus string, transactionID *string) error {
	fields := map[string]interface{}{"payment_status": paymentStatus}
	if paymentStatus == models.PaymentStatusCompleted {
		fields["paid_at"] = time.Now()
	}
	if transactionID != nil {
		fields["transaction_id"] = *transactionID
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

// OrderListParams 订单列表查询参数
type OrderListParams struct {
	Offset        int
	Limit         int
	UserID        int64
	Status        string
	PaymentStatus string
	OrderNo       string
	StartTime     *time.Time
	EndTime       *time.Time
}

// List 获取订单列表
func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]*models.Order, int64, error) {
	var orders []*models.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Order{})

	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.OrderNo != "" {
		query = query.Where("order_no LIKE ?", "%"+params.OrderNo+"%")
	}
	if params.StartTime != nil {
		query = query.Where("created_at >= ?", *params.StartTime)
	}
	if params.EndTime != nil {
		query = query.Where("created_at <= ?", *params.EndTime)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Items").
		Order("id DESC").Offset(params.Offset).Limit(params.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// DeleteStalePending 删除滞留的未支付订单
// 按创建时间与支付状态过滤：创建早于 cutoff 且支付仍为待支付或失败的订单
// 连同订单项一并删除，返回删除数量
func (r *OrderRepository) DeleteStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.Order{}).
			Where("payment_status IN ?", []string{models.PaymentStatusPending, models.PaymentStatusFailed}).
			Where("created_at < ?", cutoff).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		if err := tx.Where("order_id IN ?", ids).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}

		result := tx.Where("id IN ?", ids).Delete(&models.Order{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

// CountByStatus 统计各状态订单数量
func (r *OrderRepository) CountByStatus(ctx context.Context, userID int64) (map[string]int64, error) {
	type Result struct {
		Status string
		Count  int64
	}

	var results []Result
	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, count(*) as count")

	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	err := query.Group("status").Find(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, res := range results {
		counts[res.Status] = res.Count
	}
	return counts, nil
}

// SumPaidAmount 统计指定时间之后的已支付订单总额
func (r *OrderRepository) SumPaidAmount(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_status = ? AND created_at >= ?", models.PaymentStatusCompleted, since).
		Select("COALESCE(SUM(actual_amount), 0)").
		Scan(&total).Error
	return total, err
}

// CountCreatedSince 统计指定时间之后创建的订单数
func (r *OrderRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}
