// Package repository 提供数据访问层
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

// ProductRepository 商品仓储
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create 创建商品
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// GetByID 根据 ID 获取商品
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDWithSizes 根据 ID 获取商品（包含启用的尺码）
func (r *ProductRepository) GetByIDWithSizes(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", models.SizeStatusActive).Order("id ASC")
	}).First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetByIDFull 根据 ID 获取商品（包含分类和尺码）
func (r *ProductRepository) GetByIDFull(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.SizeStatusActive).Order("id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update 更新商品
func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// UpdateFields 更新指定字段
func (r *ProductRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除商品及其尺码
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// ProductListParams 商品列表查询参数
type ProductListParams struct {
	Offset       int
	Limit        int
	CategoryID   int64
	Keyword      string
	Status       *int8
	IsNewArrival *bool
	IsTop10      *bool
	IsBestSeller *bool
	IsLimited    *bool
	OnDeal       *bool // 仅限时特惠商品
	MinPrice     *float64
	MaxPrice     *float64
	SortBy       string // price_asc, price_desc, sales_desc, newest
}

// List 获取商品列表
func (r *ProductRepository) List(ctx context.Context, params ProductListParams) ([]*models.Product, int64, error) {
	var products []*models.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Product{})

	// 过滤条件
	if params.CategoryID > 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Keyword != "" {
		query = query.Where("name LIKE ? OR material LIKE ?", "%"+params.Keyword+"%", "%"+params.Keyword+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.IsNewArrival != nil {
		query = query.Where("is_new_arrival = ?", *params.IsNewArrival)
	}
	if params.IsTop10 != nil {
		query = query.Where("is_top10 = ?", *params.IsTop10)
	}
	if params.IsBestSeller != nil {
		query = query.Where("is_best_seller = ?", *params.IsBestSeller)
	}
	if params.IsLimited != nil {
		query = query.Where("is_limited = ?", *params.IsLimited)
	}
	if params.OnDeal != nil {
		query = query.Where("is_limited_time_deal = ?", *params.OnDeal)
	}
	if params.MinPrice != nil {
		query = query.Where("base_price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("base_price <= ?", *params.MaxPrice)
	}

	// 统计总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 排序
	switch params.SortBy {
	case "price_asc":
		query = query.Order("base_price ASC")
	case "price_desc":
		query = query.Order("base_price DESC")
	case "sales_desc":
		query = query.Order("sold_count DESC")
	case "newest":
		query = query.Order("created_at DESC")
	default:
		query = query.Order("id DESC")
	}

	// 查询列表
	if err := query.Offset(params.Offset).Limit(params.Limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// listByFlag 按营销标记获取上架商品
func (r *ProductRepository) listByFlag(ctx context.Context, flag string, limit int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("status = ?", models.ProductStatusOnSale).
		Where(flag+" = ?", true).
		Order("sold_count DESC, id DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// ListNewArrivals 获取新品
func (r *ProductRepository) ListNewArrivals(ctx context.Context, limit int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_new_arrival = ?", models.ProductStatusOnSale, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// ListTop10 获取 Top10 商品
func (r *ProductRepository) ListTop10(ctx context.Context) ([]*models.Product, error) {
	return r.listByFlag(ctx, "is_top10", 10)
}

// ListBestSellers 获取畅销商品
func (r *ProductRepository) ListBestSellers(ctx context.Context, limit int) ([]*models.Product, error) {
	return r.listByFlag(ctx, "is_best_seller", limit)
}

// ListLimited 获取限量商品
func (r *ProductRepository) ListLimited(ctx context.Context, limit int) ([]*models.Product, error) {
	return r.listByFlag(ctx, "is_limited", limit)
}

// ListActiveDeals 获取当前生效的限时特惠商品
func (r *ProductRepository) ListActiveDeals(ctx context.Context, now time.Time, limit int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND is_limited_time_deal = ?", models.ProductStatusOnSale, true).
		Where("deal_start_time IS NULL OR deal_start_time <= ?", now).
		Where("deal_end_time IS NULL OR deal_end_time > ?", now).
		Order("deal_end_time ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// ListDealsEndingBefore 获取将在指定时刻前结束的特惠商品
func (r *ProductRepository) ListDealsEndingBefore(ctx context.Context, now, until time.Time) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("is_limited_time_deal = ?", true).
		Where("deal_end_time > ? AND deal_end_time <= ?", now, until).
		Order("deal_end_time ASC").
		Find(&products).Error
	return products, err
}

// dealClearFields 特惠窗口清空字段
// 过期或售罄的特惠是单向转换，仅清空窗口字段不改动价格与库存
var dealClearFields = map[string]interface{}{
	"is_limited_time_deal": false,
	"deal_price":           nil,
	"deal_start_time":      nil,
	"deal_end_time":        nil,
	"deal_quantity_limit":  nil,
}

// DeactivateExpiredDeals 批量清除过期或售罄的特惠窗口
// 同一事务内处理商品与尺码，返回各自清除的行数
func (r *ProductRepository) DeactivateExpiredDeals(ctx context.Context, now time.Time) (int64, int64, error) {
	var productCount, sizeCount int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Product{}).
			Where("is_limited_time_deal = ?", true).
			Where("deal_end_time <= ? OR (deal_quantity_limit IS NOT NULL AND stock <= 0)", now).
			Updates(dealClearFields)
		if result.Error != nil {
			return result.Error
		}
		productCount = result.RowsAffected

		result = tx.Model(&models.ProductSize{}).
			Where("is_limited_time_deal = ?", true).
			Where("deal_end_time <= ? OR (deal_quantity_limit IS NOT NULL AND stock <= 0)", now).
			Updates(dealClearFields)
		if result.Error != nil {
			return result.Error
		}
		sizeCount = result.RowsAffected

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return productCount, sizeCount, nil
}

// ListLowStock 获取库存不高于阈值的上架商品
func (r *ProductRepository) ListLowStock(ctx context.Context, threshold int) ([]*models.Product, error) {
	var products []*models.Product
	err := r.db.WithContext(ctx).
		Where("status = ? AND stock <= ?", models.ProductStatusOnSale, threshold).
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

// IncreaseSoldCount 增加销量
func (r *ProductRepository) IncreaseSoldCount(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("sold_count", gorm.Expr("sold_count + ?", quantity)).
		Error
}

// IncreaseViewCount 增加浏览量
func (r *ProductRepository) IncreaseViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).
		Error
}

// DecreaseStock 减少库存（库存不足时返回 ErrRecordNotFound）
func (r *ProductRepository) DecreaseStock(ctx context.Context, id int64, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncreaseStock 增加库存
func (r *ProductRepository) IncreaseStock(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).
		Error
}

// ProductSizeRepository 商品尺码仓储
type ProductSizeRepository struct {
	db *gorm.DB
}

// NewProductSizeRepository 创建商品尺码仓储
func NewProductSizeRepository(db *gorm.DB) *ProductSizeRepository {
	return &ProductSizeRepository{db: db}
}

// Create 创建尺码
func (r *ProductSizeRepository) Create(ctx context.Context, size *models.ProductSize) error {
	return r.db.WithContext(ctx).Create(size).Error
}

// CreateBatch 批量创建尺码
func (r *ProductSizeRepository) CreateBatch(ctx context.Context, sizes []*models.ProductSize) error {
	return r.db.WithContext(ctx).CreateInBatches(sizes, 100).Error
}

// GetByID 根据 ID 获取尺码
func (r *ProductSizeRepository) GetByID(ctx context.Context, id int64) (*models.ProductSize, error) {
	var size models.ProductSize
	err := r.db.WithContext(ctx).First(&size, id).Error
	if err != nil {
		return nil, err
	}
	return &size, nil
}

// ListByProductID 获取商品的启用尺码
func (r *ProductSizeRepository) ListByProductID(ctx context.Context, productID int64) ([]*models.ProductSize, error) {
	var sizes []*models.ProductSize
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND status = ?", productID, models.SizeStatusActive).
		Order("id ASC").
		Find(&sizes).Error
	return sizes, err
}

// Update 更新尺码
func (r *ProductSizeRepository) Update(ctx context.Context, size *models.ProductSize) error {
	return r.db.WithContext(ctx).Save(size).Error
}

// UpdateFields 更新指定字段
func (r *ProductSizeRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.ProductSize{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除尺码
func (r *ProductSizeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.ProductSize{}, id).Error
}

// DecreaseStock 减少尺码库存（库存不足时返回 ErrRecordNotFound）
func (r *ProductSizeRepository) DecreaseStock(ctx context.Context, id int64, quantity int) error {
	result := r.db.WithContext(ctx).Model(&models.ProductSize{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IncreaseStock 增加尺码库存
func (r *ProductSizeRepository) IncreaseStock(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.ProductSize{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity)).
		Error
}
