// Package admin 提供后台管理服务
package admin

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// ProductAdminService 商品管理服务
type ProductAdminService struct {
	productRepo  *repository.ProductRepository
	sizeRepo     *repository.ProductSizeRepository
	categoryRepo *repository.CategoryRepository
}

// NewProductAdminService 创建商品管理服务
func NewProductAdminService(
	productRepo *repository.ProductRepository,
	sizeRepo *repository.ProductSizeRepository,
	categoryRepo *repository.CategoryRepository,
) *ProductAdminService {
	return &ProductAdminService{
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
		categoryRepo: categoryRepo,
	}
}

// SaveProductRequest 商品创建/更新请求
type SaveProductRequest struct {
	CategoryID  int64    `json:"category_id" binding:"required"`
	Name        string   `json:"name" binding:"required,max=200"`
	MainImage   string   `json:"main_image" binding:"required"`
	Images      []string `json:"images,omitempty"`
	Description *string  `json:"description,omitempty"`
	Material    *string  `json:"material,omitempty"`
	BasePrice   float64  `json:"base_price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"omitempty,min=0"`
	Status      int8     `json:"status" binding:"omitempty,oneof=1 2"`
}

// SaveSizeRequest 尺码创建/更新请求
type SaveSizeRequest struct {
	Name   string  `json:"name" binding:"required,max=50"`
	Price  float64 `json:"price" binding:"required,gt=0"`
	Stock  int     `json:"stock" binding:"omitempty,min=0"`
	Status int8    `json:"status" binding:"omitempty,oneof=0 1"`
}

// MarketingFlagsRequest 营销标记请求
type MarketingFlagsRequest struct {
	IsNewArrival *bool `json:"is_new_arrival,omitempty"`
	IsTop10      *bool `json:"is_top10,omitempty"`
	IsBestSeller *bool `json:"is_best_seller,omitempty"`
	IsLimited    *bool `json:"is_limited,omitempty"`
}

// DealRequest 限时特惠设置请求
type DealRequest struct {
	DealPrice         float64 `json:"deal_price" binding:"required,gt=0"`
	StartTime         string  `json:"start_time" binding:"required"`
	EndTime           string  `json:"end_time" binding:"required"`
	QuantityLimit     *int    `json:"quantity_limit,omitempty" binding:"omitempty,gt=0"`
	ApplyToSizes      bool    `json:"apply_to_sizes"`
	SizeDiscountRatio float64 `json:"size_discount_ratio,omitempty"` // 尺码特惠价与原价的比例，缺省按主价比例
}

// CreateProduct 创建商品
func (s *ProductAdminService) CreateProduct(ctx context.Context, req *SaveProductRequest) (*models.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCategoryNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	status := req.Status
	if status == 0 {
		status = models.ProductStatusOnSale
	}

	product := &models.Product{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		MainImage:   req.MainImage,
		Images:      models.StringList(req.Images),
		Description: req.Description,
		Material:    req.Material,
		BasePrice:   req.BasePrice,
		Stock:       req.Stock,
		Status:      status,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("商品创建成功", logger.Module("admin"), logger.ProductID(product.ID))
	return product, nil
}

// GetProduct 获取商品（含全部尺码）
func (s *ProductAdminService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByIDWithSizes(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return product, nil
}

// ListProducts 商品列表（管理端，不限上架状态）
func (s *ProductAdminService) ListProducts(ctx context.Context, params repository.ProductListParams) ([]*models.Product, int64, error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return products, total, nil
}

// UpdateProduct 更新商品
func (s *ProductAdminService) UpdateProduct(ctx context.Context, id int64, req *SaveProductRequest) (*models.Product, error) {
	product, err := s.getProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != product.CategoryID {
		if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrCategoryNotFound
			}
			return nil, errors.ErrDatabaseError.WithError(err)
		}
	}

	fields := map[string]interface{}{
		"category_id": req.CategoryID,
		"name":        req.Name,
		"main_image":  req.MainImage,
		"images":      models.StringList(req.Images),
		"base_price":  req.BasePrice,
		"stock":       req.Stock,
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Material != nil {
		fields["material"] = *req.Material
	}
	if req.Status != 0 {
		fields["status"] = req.Status
	}

	if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetProduct(ctx, id)
}

// UpdateMarketingFlags 更新营销标记
func (s *ProductAdminService) UpdateMarketingFlags(ctx context.Context, id int64, req *MarketingFlagsRequest) error {
	if _, err := s.getProduct(ctx, id); err != nil {
		return err
	}

	fields := make(map[string]interface{})
	if req.IsNewArrival != nil {
		fields["is_new_arrival"] = *req.IsNewArrival
	}
	if req.IsTop10 != nil {
		fields["is_top10"] = *req.IsTop10
	}
	if req.IsBestSeller != nil {
		fields["is_best_seller"] = *req.IsBestSeller
	}
	if req.IsLimited != nil {
		fields["is_limited"] = *req.IsLimited
	}
	if len(fields) == 0 {
		return nil
	}

	if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// SetDeal 为商品开启限时特惠，同时按比例下调启用尺码的特惠价
func (s *ProductAdminService) SetDeal(ctx context.Context, id int64, req *DealRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	startTime, endTime, err := parseDealWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if req.DealPrice >= product.BasePrice {
		return nil, errors.ErrDealPriceInvalid
	}

	fields := map[string]interface{}{
		"is_limited_time_deal": true,
		"deal_price":           req.DealPrice,
		"deal_start_time":      startTime,
		"deal_end_time":        endTime,
		"deal_quantity_limit":  req.QuantityLimit,
	}
	if err := s.productRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.ApplyToSizes {
		ratio := req.SizeDiscountRatio
		if ratio <= 0 || ratio >= 1 {
			ratio = req.DealPrice / product.BasePrice
		}
		for i := range product.Sizes {
			size := &product.Sizes[i]
			sizeDealPrice := round2(size.Price * ratio)
			if sizeDealPrice <= 0 || sizeDealPrice >= size.Price {
				return nil, errors.ErrDealPriceInvalid
			}
			sizeFields := map[string]interface{}{
				"is_limited_time_deal": true,
				"deal_price":           sizeDealPrice,
				"deal_start_time":      startTime,
				"deal_end_time":        endTime,
				"deal_quantity_limit":  req.QuantityLimit,
			}
			if err := s.sizeRepo.UpdateFields(ctx, size.ID, sizeFields); err != nil {
				return nil, errors.ErrDatabaseError.WithError(err)
			}
		}
	}

	logger.Info("限时特惠已设置", logger.Module("admin"), logger.ProductID(id))
	return s.GetProduct(ctx, id)
}

// ClearDeal 手动下线商品的限时特惠
func (s *ProductAdminService) ClearDeal(ctx context.Context, id int64) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}

	clear := map[string]interface{}{
		"is_limited_time_deal": false,
		"deal_price":           nil,
		"deal_start_time":      nil,
		"deal_end_time":        nil,
		"deal_quantity_limit":  nil,
	}
	if err := s.productRepo.UpdateFields(ctx, id, clear); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	for i := range product.Sizes {
		if err := s.sizeRepo.UpdateFields(ctx, product.Sizes[i].ID, clear); err != nil {
			return errors.ErrDatabaseError.WithError(err)
		}
	}
	return nil
}

// DeleteProduct 删除商品及其尺码
func (s *ProductAdminService) DeleteProduct(ctx context.Context, id int64) error {
	if _, err := s.getProduct(ctx, id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// CreateSize 为商品新增尺码
func (s *ProductAdminService) CreateSize(ctx context.Context, productID int64, req *SaveSizeRequest) (*models.ProductSize, error) {
	if _, err := s.getProduct(ctx, productID); err != nil {
		return nil, err
	}

	status := req.Status
	if status == 0 {
		status = models.SizeStatusActive
	}

	size := &models.ProductSize{
		ProductID: productID,
		Name:      req.Name,
		Price:     req.Price,
		Stock:     req.Stock,
		Status:    status,
	}
	if err := s.sizeRepo.Create(ctx, size); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return size, nil
}

// UpdateSize 更新尺码
func (s *ProductAdminService) UpdateSize(ctx context.Context, sizeID int64, req *SaveSizeRequest) (*models.ProductSize, error) {
	size, err := s.sizeRepo.GetByID(ctx, sizeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrSizeNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	fields := map[string]interface{}{
		"name":  req.Name,
		"price": req.Price,
		"stock": req.Stock,
	}
	if req.Status != size.Status {
		fields["status"] = req.Status
	}
	if err := s.sizeRepo.UpdateFields(ctx, sizeID, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.sizeRepo.GetByID(ctx, sizeID)
}

// DeleteSize 删除尺码
func (s *ProductAdminService) DeleteSize(ctx context.Context, sizeID int64) error {
	if err := s.sizeRepo.Delete(ctx, sizeID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrSizeNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// getProduct 获取商品（不带关联）
func (s *ProductAdminService) getProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return product, nil
}

// parseDealWindow 解析并校验特惠窗口：结束须晚于开始且晚于当前时刻
func parseDealWindow(start, end string) (time.Time, time.Time, error) {
	startTime, err := parseDealTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endTime, err := parseDealTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !endTime.After(startTime) || !endTime.After(time.Now()) {
		return time.Time{}, time.Time{}, errors.ErrDealWindowInvalid
	}
	return startTime, endTime, nil
}

// parseDealTime 解析特惠时间
func parseDealTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrDealWindowInvalid
}

// round2 金额保留两位小数
func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
