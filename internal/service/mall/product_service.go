// Package mall 提供商城服务
package mall

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/cache"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// 热门榜单缓存时长
const hotListCacheTTL = 5 * time.Minute

// ProductService 商品服务
type ProductService struct {
	productRepo  *repository.ProductRepository
	sizeRepo     *repository.ProductSizeRepository
	categoryRepo *repository.CategoryRepository
	reviewRepo   *repository.ReviewRepository
	redisClient  *redis.Client
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo *repository.ProductRepository,
	sizeRepo *repository.ProductSizeRepository,
	categoryRepo *repository.CategoryRepository,
	reviewRepo *repository.ReviewRepository,
	redisClient *redis.Client,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		sizeRepo:     sizeRepo,
		categoryRepo: categoryRepo,
		reviewRepo:   reviewRepo,
		redisClient:  redisClient,
	}
}

// ProductInfo 商品信息
type ProductInfo struct {
	ID            int64       `json:"id"`
	CategoryID    int64       `json:"category_id"`
	CategoryName  string      `json:"category_name,omitempty"`
	Name          string      `json:"name"`
	MainImage     string      `json:"main_image"`
	Images        []string    `json:"images,omitempty"`
	Description   string      `json:"description,omitempty"`
	Material      string      `json:"material,omitempty"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"original_price,omitempty"`
	Stock         int         `json:"stock"`
	SoldCount     int         `json:"sold_count"`
	IsNewArrival  bool        `json:"is_new_arrival"`
	IsTop10       bool        `json:"is_top10"`
	IsBestSeller  bool        `json:"is_best_seller"`
	IsLimited     bool        `json:"is_limited"`
	OnDeal        bool        `json:"on_deal"`
	DealEndTime   *time.Time  `json:"deal_end_time,omitempty"`
	Rating        float64     `json:"rating,omitempty"`
	ReviewCount   int64       `json:"review_count,omitempty"`
	Sizes         []*SizeInfo `json:"sizes,omitempty"`
}

// SizeInfo 尺码信息
type SizeInfo struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	OriginalPrice float64 `json:"original_price,omitempty"`
	Stock         int     `json:"stock"`
	OnDeal        bool    `json:"on_deal"`
}

// ProductListRequest 商品列表请求
type ProductListRequest struct {
	Page       int     `form:"page" binding:"omitempty,min=1"`
	PageSize   int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	CategoryID int64   `form:"category_id"`
	Keyword    string  `form:"keyword"`
	OnDeal     *bool   `form:"on_deal"`
	MinPrice   float64 `form:"min_price"`
	MaxPrice   float64 `form:"max_price"`
	SortBy     string  `form:"sort_by"` // price_asc, price_desc, sales_desc, newest
}

// ProductListResponse 商品列表响应
type ProductListResponse struct {
	List       []*ProductInfo `json:"list"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// GetProductList 获取商品列表
func (s *ProductService) GetProductList(ctx context.Context, req *ProductListRequest) (*ProductListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	onSale := int8(models.ProductStatusOnSale)
	params := repository.ProductListParams{
		Offset:     (req.Page - 1) * req.PageSize,
		Limit:      req.PageSize,
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		Status:     &onSale,
		OnDeal:     req.OnDeal,
		SortBy:     req.SortBy,
	}
	if req.MinPrice > 0 {
		params.MinPrice = &req.MinPrice
	}
	if req.MaxPrice > 0 {
		params.MaxPrice = &req.MaxPrice
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	now := time.Now()
	list := make([]*ProductInfo, len(products))
	for i, p := range products {
		list[i] = s.toProductInfo(p, now)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize > 0 {
		totalPages++
	}

	return &ProductListResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProductDetail 获取商品详情（含尺码与评分）
func (s *ProductService) GetProductDetail(ctx context.Context, productID int64) (*ProductInfo, error) {
	product, err := s.productRepo.GetByIDFull(ctx, productID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if product.Status != models.ProductStatusOnSale {
		return nil, errors.ErrProductOffShelf
	}

	now := time.Now()
	info := s.toProductInfo(product, now)

	if product.Category != nil {
		info.CategoryName = product.Category.Name
	}

	if len(product.Sizes) > 0 {
		info.Sizes = make([]*SizeInfo, len(product.Sizes))
		for i := range product.Sizes {
			info.Sizes[i] = s.toSizeInfo(&product.Sizes[i], now)
		}
	}

	rating, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err == nil {
		info.Rating = rating
		info.ReviewCount = count
	}

	// 浏览计数失败不影响详情返回
	_ = s.productRepo.IncreaseViewCount(ctx, productID)

	return info, nil
}

// GetCategories 获取启用的分类
func (s *ProductService) GetCategories(ctx context.Context) ([]*models.Category, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return categories, nil
}

// GetTop10 获取 Top10 榜单（带缓存）
func (s *ProductService) GetTop10(ctx context.Context) ([]*ProductInfo, error) {
	return s.cachedList(ctx, cache.BuildKey(cache.KeyPrefixHotList, "top10"), func() ([]*models.Product, error) {
		return s.productRepo.ListTop10(ctx)
	})
}

// GetNewArrivals 获取新品榜单（带缓存）
func (s *ProductService) GetNewArrivals(ctx context.Context, limit int) ([]*ProductInfo, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.cachedList(ctx, cache.BuildKey(cache.KeyPrefixHotList, "new"), func() ([]*models.Product, error) {
		return s.productRepo.ListNewArrivals(ctx, limit)
	})
}

// GetBestSellers 获取畅销榜单（带缓存）
func (s *ProductService) GetBestSellers(ctx context.Context, limit int) ([]*ProductInfo, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.cachedList(ctx, cache.BuildKey(cache.KeyPrefixHotList, "best"), func() ([]*models.Product, error) {
		return s.productRepo.ListBestSellers(ctx, limit)
	})
}

// GetLimitedProducts 获取限量商品榜单（带缓存）
func (s *ProductService) GetLimitedProducts(ctx context.Context, limit int) ([]*ProductInfo, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.cachedList(ctx, cache.BuildKey(cache.KeyPrefixHotList, "limited"), func() ([]*models.Product, error) {
		return s.productRepo.ListLimited(ctx, limit)
	})
}

// GetActiveDeals 获取限时特惠榜单
func (s *ProductService) GetActiveDeals(ctx context.Context, limit int) ([]*ProductInfo, error) {
	if limit <= 0 {
		limit = 20
	}
	products, err := s.productRepo.ListActiveDeals(ctx, time.Now(), limit)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.toProductInfos(products), nil
}

// InvalidateHotLists 清除榜单缓存
func (s *ProductService) InvalidateHotLists(ctx context.Context) {
	if s.redisClient == nil {
		return
	}
	keys := []string{
		cache.BuildKey(cache.KeyPrefixHotList, "top10"),
		cache.BuildKey(cache.KeyPrefixHotList, "new"),
		cache.BuildKey(cache.KeyPrefixHotList, "best"),
		cache.BuildKey(cache.KeyPrefixHotList, "limited"),
	}
	if err := s.redisClient.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("清除榜单缓存失败", logger.Module("mall"), logger.Err(err))
	}
}

// cachedList 带 Redis 缓存的榜单查询，缓存不可用时直接回源
func (s *ProductService) cachedList(ctx context.Context, key string, load func() ([]*models.Product, error)) ([]*ProductInfo, error) {
	if s.redisClient != nil {
		data, err := s.redisClient.Get(ctx, key).Result()
		if err == nil {
			var list []*ProductInfo
			if err := json.Unmarshal([]byte(data), &list); err == nil {
				return list, nil
			}
		}
	}

	products, err := load()
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	list := s.toProductInfos(products)

	if s.redisClient != nil {
		if data, err := json.Marshal(list); err == nil {
			if err := s.redisClient.Set(ctx, key, data, hotListCacheTTL).Err(); err != nil {
				logger.Warn("写入榜单缓存失败", logger.Module("mall"), logger.Err(err))
			}
		}
	}

	return list, nil
}

// toProductInfos 批量转换为商品信息
func (s *ProductService) toProductInfos(products []*models.Product) []*ProductInfo {
	now := time.Now()
	list := make([]*ProductInfo, len(products))
	for i, p := range products {
		list[i] = s.toProductInfo(p, now)
	}
	return list
}

// toProductInfo 转换为商品信息，特惠生效时价格取特惠价
func (s *ProductService) toProductInfo(p *models.Product, now time.Time) *ProductInfo {
	info := &ProductInfo{
		ID:           p.ID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		MainImage:    p.MainImage,
		Images:       p.Images,
		Price:        p.CurrentPrice(now),
		Stock:        p.Stock,
		SoldCount:    p.SoldCount,
		IsNewArrival: p.IsNewArrival,
		IsTop10:      p.IsTop10,
		IsBestSeller: p.IsBestSeller,
		IsLimited:    p.IsLimited,
		OnDeal:       p.DealActive(now),
	}

	if info.OnDeal {
		info.OriginalPrice = p.BasePrice
		info.DealEndTime = p.DealEndTime
	}
	if p.Description != nil {
		info.Description = *p.Description
	}
	if p.Material != nil {
		info.Material = *p.Material
	}

	return info
}

// toSizeInfo 转换为尺码信息
func (s *ProductService) toSizeInfo(size *models.ProductSize, now time.Time) *SizeInfo {
	info := &SizeInfo{
		ID:    size.ID,
		Name:  size.Name,
		Price: size.CurrentPrice(now),
		Stock: size.Stock,
	}
	if info.Price != size.Price {
		info.OriginalPrice = size.Price
		info.OnDeal = true
	}
	return info
}
