// Package admin 提供管理端的 HTTP Handler
package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
	mallService "github.com/chensiyuan/home-textile-mall-backend/internal/service/mall"
)

// ProductHandler 商品管理处理器
type ProductHandler struct {
	productAdminService *adminService.ProductAdminService
	productService      *mallService.ProductService
}

// NewProductHandler 创建商品管理处理器
func NewProductHandler(
	productAdminSvc *adminService.ProductAdminService,
	productSvc *mallService.ProductService,
) *ProductHandler {
	return &ProductHandler{
		productAdminService: productAdminSvc,
		productService:      productSvc,
	}
}

// productListQuery 商品列表查询参数
type productListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	CategoryID int64  `form:"category_id"`
	Keyword    string `form:"keyword"`
	Status     *int8  `form:"status" binding:"omitempty,oneof=1 2"`
	OnDeal     *bool  `form:"on_deal"`
	SortBy     string `form:"sort_by"`
}

// ListProducts 商品列表（含下架商品）
// @Summary 商品列表
// @Tags 管理端-商品
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/admin/products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var query productListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	pagination := &utils.Pagination{Page: query.Page, PageSize: query.PageSize}
	pagination.Normalize()

	products, total, err := h.productAdminService.ListProducts(c.Request.Context(), repository.ProductListParams{
		Offset:     pagination.GetOffset(),
		Limit:      pagination.GetLimit(),
		CategoryID: query.CategoryID,
		Keyword:    query.Keyword,
		Status:     query.Status,
		OnDeal:     query.OnDeal,
		SortBy:     query.SortBy,
	})
	handler.MustSucceedPage(c, err, products, total, pagination.Page, pagination.PageSize)
}

// GetProduct 商品详情
// @Summary 商品详情
// @Tags 管理端-商品
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response{data=models.Product}
// @Router /api/v1/admin/products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	product, err := h.productAdminService.GetProduct(c.Request.Context(), id)
	handler.MustSucceed(c, err, product)
}

// CreateProduct 创建商品
// @Summary 创建商品
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body admin.SaveProductRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Product}
// @Router /api/v1/admin/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req adminService.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	product, err := h.productAdminService.CreateProduct(c.Request.Context(), &req)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, product)
}

// UpdateProduct 更新商品
// @Summary 更新商品
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body admin.SaveProductRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Product}
// @Router /api/v1/admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	var req adminService.SaveProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	product, err := h.productAdminService.UpdateProduct(c.Request.Context(), id, &req)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, product)
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags 管理端-商品
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	err := h.productAdminService.DeleteProduct(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, nil)
}

// UpdateMarketingFlags 更新营销标记
// @Summary 更新营销标记
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body admin.MarketingFlagsRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/products/{id}/marketing [put]
func (h *ProductHandler) UpdateMarketingFlags(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	var req adminService.MarketingFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.productAdminService.UpdateMarketingFlags(c.Request.Context(), id, &req)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, nil)
}

// SetDeal 设置限时特惠
// @Summary 设置限时特惠
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body admin.DealRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Product}
// @Router /api/v1/admin/products/{id}/deal [put]
func (h *ProductHandler) SetDeal(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	var req adminService.DealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	product, err := h.productAdminService.SetDeal(c.Request.Context(), id, &req)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, product)
}

// ClearDeal 取消限时特惠
// @Summary 取消限时特惠
// @Tags 管理端-商品
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/products/{id}/deal [delete]
func (h *ProductHandler) ClearDeal(c *gin.Context) {
	id, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	err := h.productAdminService.ClearDeal(c.Request.Context(), id)
	if handler.HandleError(c, err) {
		return
	}

	h.productService.InvalidateHotLists(c.Request.Context())
	response.Success(c, nil)
}

// CreateSize 新增尺码
// @Summary 新增尺码
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "商品ID"
// @Param request body admin.SaveSizeRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.ProductSize}
// @Router /api/v1/admin/products/{id}/sizes [post]
func (h *ProductHandler) CreateSize(c *gin.Context) {
	productID, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	var req adminService.SaveSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	size, err := h.productAdminService.CreateSize(c.Request.Context(), productID, &req)
	handler.MustSucceed(c, err, size)
}

// UpdateSize 更新尺码
// @Summary 更新尺码
// @Tags 管理端-商品
// @Accept json
// @Produce json
// @Security Bearer
// @Param size_id path int true "尺码ID"
// @Param request body admin.SaveSizeRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.ProductSize}
// @Router /api/v1/admin/sizes/{size_id} [put]
func (h *ProductHandler) UpdateSize(c *gin.Context) {
	sizeID, ok := handler.ParseParamID(c, "size_id", "尺码")
	if !ok {
		return
	}

	var req adminService.SaveSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	size, err := h.productAdminService.UpdateSize(c.Request.Context(), sizeID, &req)
	handler.MustSucceed(c, err, size)
}

// DeleteSize 删除尺码
// @Summary 删除尺码
// @Tags 管理端-商品
// @Produce json
// @Security Bearer
// @Param size_id path int true "尺码ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/sizes/{size_id} [delete]
func (h *ProductHandler) DeleteSize(c *gin.Context) {
	sizeID, ok := handler.ParseParamID(c, "size_id", "尺码")
	if !ok {
		return
	}

	err := h.productAdminService.DeleteSize(c.Request.Context(), sizeID)
	handler.MustSucceed(c, err, nil)
}

// parseDays 解析 days 查询参数
func parseDays(c *gin.Context, fallback int) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", strconv.Itoa(fallback)))
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
