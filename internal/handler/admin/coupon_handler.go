package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	marketingService "github.com/chensiyuan/home-textile-mall-backend/internal/service/marketing"
)

// CouponHandler 优惠券管理处理器
type CouponHandler struct {
	couponService *marketingService.CouponService
}

// NewCouponHandler 创建优惠券管理处理器
func NewCouponHandler(couponSvc *marketingService.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponSvc}
}

// ListCoupons 优惠券列表
// @Summary 优惠券列表
// @Tags 管理端-优惠券
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "搜索关键词"
// @Param is_active query bool false "是否启用"
// @Success 200 {object} response.Response{data=marketing.CouponListResponse}
// @Router /api/v1/admin/coupons [get]
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	var req marketingService.CouponListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.couponService.ListCoupons(c.Request.Context(), &req)
	handler.MustSucceed(c, err, result)
}

// GetCoupon 优惠券详情
// @Summary 优惠券详情
// @Tags 管理端-优惠券
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Success 200 {object} response.Response{data=models.Coupon}
// @Router /api/v1/admin/coupons/{id} [get]
func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	handler.MustSucceed(c, err, coupon)
}

// CreateCoupon 创建优惠券
// @Summary 创建优惠券
// @Tags 管理端-优惠券
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body marketing.CreateCouponRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Coupon}
// @Router /api/v1/admin/coupons [post]
func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req marketingService.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	handler.MustSucceed(c, err, coupon)
}

// UpdateCoupon 更新优惠券
// @Summary 更新优惠券
// @Tags 管理端-优惠券
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Param request body marketing.UpdateCouponRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Coupon}
// @Router /api/v1/admin/coupons/{id} [put]
func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	var req marketingService.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, coupon)
}

// ToggleCoupon 启用/停用优惠券
// @Summary 启用/停用优惠券
// @Tags 管理端-优惠券
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Param request body map[string]bool true "active"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/coupons/{id}/toggle [put]
func (h *CouponHandler) ToggleCoupon(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.couponService.ToggleCoupon(c.Request.Context(), id, *req.Active)
	handler.MustSucceed(c, err, nil)
}

// DeleteCoupon 删除优惠券
// @Summary 删除优惠券
// @Tags 管理端-优惠券
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/coupons/{id} [delete]
func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	err := h.couponService.DeleteCoupon(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}

// GetShareQRCode 获取优惠券分享二维码
// @Summary 获取优惠券分享二维码
// @Tags 管理端-优惠券
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Success 200 {object} response.Response{data=map[string]string}
// @Router /api/v1/admin/coupons/{id}/qrcode [get]
func (h *CouponHandler) GetShareQRCode(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	dataURL, err := h.couponService.GenerateShareQRCode(c.Request.Context(), id)
	handler.MustSucceed(c, err, gin.H{"qrcode": dataURL})
}

// ListUsages 优惠券使用记录
// @Summary 优惠券使用记录
// @Tags 管理端-优惠券
// @Produce json
// @Security Bearer
// @Param id path int true "优惠券ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/coupons/{id}/usages [get]
func (h *CouponHandler) ListUsages(c *gin.Context) {
	id, ok := handler.ParseID(c, "优惠券")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	usages, total, err := h.couponService.ListUsages(c.Request.Context(), id, page, pageSize)
	handler.MustSucceedPage(c, err, usages, total, page, pageSize)
}
