// Package mall 提供商城相关的 HTTP Handler
package mall

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	mallService "github.com/chensiyuan/home-textile-mall-backend/internal/service/mall"
)

// ProductHandler 商品处理器
type ProductHandler struct {
	productService *mallService.ProductService
}

// NewProductHandler 创建商品处理器
func NewProductHandler(productSvc *mallService.ProductService) *ProductHandler {
	return &ProductHandler{productService: productSvc}
}

// GetCategories 获取分类列表
// @Summary 获取分类列表
// @Tags 商品
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Category}
// @Router /api/v1/categories [get]
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories(c.Request.Context())
	handler.MustSucceed(c, err, categories)
}

// GetProductList 获取商品列表
// @Summary 获取商品列表
// @Tags 商品
// @Produce json
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param category_id query int false "分类ID"
// @Param keyword query string false "搜索关键词"
// @Param sort_by query string false "排序方式"
// @Success 200 {object} response.Response{data=mall.ProductListResponse}
// @Router /api/v1/products [get]
func (h *ProductHandler) GetProductList(c *gin.Context) {
	var req mallService.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.productService.GetProductList(c.Request.Context(), &req)
	handler.MustSucceed(c, err, result)
}

// GetProductDetail 获取商品详情
// @Summary 获取商品详情
// @Tags 商品
// @Produce json
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response{data=mall.ProductInfo}
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) GetProductDetail(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	detail, err := h.productService.GetProductDetail(c.Request.Context(), id)
	handler.MustSucceed(c, err, detail)
}

// GetTop10 获取十大推荐商品
// @Summary 获取十大推荐商品
// @Tags 商品
// @Produce json
// @Success 200 {object} response.Response{data=[]mall.ProductInfo}
// @Router /api/v1/home/top10 [get]
func (h *ProductHandler) GetTop10(c *gin.Context) {
	products, err := h.productService.GetTop10(c.Request.Context())
	handler.MustSucceed(c, err, products)
}

// GetNewArrivals 获取新品列表
// @Summary 获取新品列表
// @Tags 商品
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} response.Response{data=[]mall.ProductInfo}
// @Router /api/v1/home/new [get]
func (h *ProductHandler) GetNewArrivals(c *gin.Context) {
	limit := parseLimit(c, 10)
	products, err := h.productService.GetNewArrivals(c.Request.Context(), limit)
	handler.MustSucceed(c, err, products)
}

// GetBestSellers 获取热销商品列表
// @Summary 获取热销商品列表
// @Tags 商品
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} response.Response{data=[]mall.ProductInfo}
// @Router /api/v1/home/best-sellers [get]
func (h *ProductHandler) GetBestSellers(c *gin.Context) {
	limit := parseLimit(c, 10)
	products, err := h.productService.GetBestSellers(c.Request.Context(), limit)
	handler.MustSucceed(c, err, products)
}

// GetLimitedProducts 获取限量商品列表
// @Summary 获取限量商品列表
// @Tags 商品
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} response.Response{data=[]mall.ProductInfo}
// @Router /api/v1/home/limited [get]
func (h *ProductHandler) GetLimitedProducts(c *gin.Context) {
	limit := parseLimit(c, 10)
	products, err := h.productService.GetLimitedProducts(c.Request.Context(), limit)
	handler.MustSucceed(c, err, products)
}

// GetActiveDeals 获取进行中的限时特惠
// @Summary 获取进行中的限时特惠
// @Tags 商品
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} response.Response{data=[]mall.ProductInfo}
// @Router /api/v1/deals [get]
func (h *ProductHandler) GetActiveDeals(c *gin.Context) {
	limit := parseLimit(c, 20)
	products, err := h.productService.GetActiveDeals(c.Request.Context(), limit)
	handler.MustSucceed(c, err, products)
}

// parseLimit 解析 limit 查询参数
func parseLimit(c *gin.Context, fallback int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(fallback)))
	if err != nil || limit <= 0 {
		return fallback
	}
	return limit
}
