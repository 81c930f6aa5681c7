// Package repository 提供数据访问层
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// ReviewRepository 商品评价仓储
type ReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建商品评价仓储
func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create 创建评价
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// GetByID 根据 ID 获取评价
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// ListVisibleByProductID 获取商品的可见评价
func (r *ReviewRepository) ListVisibleByProductID(ctx context.Context, productID int64, offset, limit int) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND is_visible = ?", productID, true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").
		Order("is_featured DESC, id DESC").Offset(offset).Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// ListFeatured 获取精选评价
func (r *ReviewRepository) ListFeatured(ctx context.Context, limit int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Where("is_visible = ? AND is_featured = ?", true, true).
		Preload("User").Preload("Product").
		Order("id DESC").
		Limit(limit).
		Find(&reviews).Error
	return reviews, err
}

// ReviewListParams 评价列表查询参数（后台）
type ReviewListParams struct {
	Offset    int
	Limit     int
	ProductID int64
	UserID    int64
	Rating    int
	IsVisible *bool
}

// List 获取评价列表
func (r *ReviewRepository) List(ctx context.Context, params ReviewListParams) ([]*models.Review, int64, error) {
	var reviews []*models.Review
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Review{})

	if params.ProductID > 0 {
		query = query.Where("product_id = ?", params.ProductID)
	}
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Rating > 0 {
		query = query.Where("rating = ?", params.Rating)
	}
	if params.IsVisible != nil {
		query = query.Where("is_visible = ?", *params.IsVisible)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("User").Preload("Product").
		Order("id DESC").Offset(params.Offset).Limit(params.Limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// UpdateFields 更新指定字段
func (r *ReviewRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error
}

// SetVisible 设置评价可见性
func (r *ReviewRepository) SetVisible(ctx context.Context, id int64, visible bool) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_visible", visible)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetFeatured 设置评价精选标记
func (r *ReviewRepository) SetFeatured(ctx context.Context, id int64, featured bool) error {
	result := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Update("is_featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 删除评价
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

// AverageRating 计算商品可见评价的平均评分
func (r *ReviewRepository) AverageRating(ctx context.Context, productID int64) (float64, int64, error) {
	type Result struct {
		Average float64
		Count   int64
	}

	var result Result
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("product_id = ? AND is_visible = ?", productID, true).
		Select("COALESCE(AVG(rating), 0) as average, COUNT(*) as count").
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Count, nil
}

// ExistsByOrderAndProduct 检查订单内商品是否已评价
func (r *ReviewRepository) ExistsByOrderAndProduct(ctx context.Context, orderID, productID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("order_id = ? AND product_id = ? AND user_id = ?", orderID, productID, userID).
		Count(&count).Error
	return count > 0, err
}
