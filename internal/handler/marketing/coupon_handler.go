// Package marketing 提供营销相关的 HTTP Handler
package marketing

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	marketingService "github.com/chensiyuan/home-textile-mall-backend/internal/service/marketing"
)

// CouponHandler 优惠券处理器
type CouponHandler struct {
	couponService *marketingService.CouponService
}

// NewCouponHandler 创建优惠券处理器
func NewCouponHandler(couponSvc *marketingService.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponSvc}
}

// ListAvailableCoupons 获取当前可用的优惠券
// @Summary 获取当前可用的优惠券
// @Tags 优惠券
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Coupon}
// @Router /api/v1/coupons [get]
func (h *CouponHandler) ListAvailableCoupons(c *gin.Context) {
	coupons, err := h.couponService.ListAvailableCoupons(c.Request.Context())
	handler.MustSucceed(c, err, coupons)
}
