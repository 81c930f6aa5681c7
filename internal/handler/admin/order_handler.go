package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
)

// OrderHandler 订单管理处理器
type OrderHandler struct {
	orderAdminService *adminService.OrderAdminService
}

// NewOrderHandler 创建订单管理处理器
func NewOrderHandler(orderAdminSvc *adminService.OrderAdminService) *OrderHandler {
	return &OrderHandler{orderAdminService: orderAdminSvc}
}

// ListOrders 订单列表
// @Summary 订单列表
// @Tags 管理端-订单
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "订单状态"
// @Param payment_status query string false "支付状态"
// @Param order_no query string false "订单号"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req adminService.OrderAdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	orders, total, err := h.orderAdminService.ListOrders(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, orders, total, req.Page, req.PageSize)
}

// GetOrder 订单详情
// @Summary 订单详情
// @Tags 管理端-订单
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=models.Order}
// @Router /api/v1/admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	order, err := h.orderAdminService.GetOrder(c.Request.Context(), id)
	handler.MustSucceed(c, err, order)
}

// UpdateOrderStatus 更新订单状态
// @Summary 更新订单状态
// @Tags 管理端-订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body map[string]string true "status"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.orderAdminService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	handler.MustSucceed(c, err, nil)
}

// CleanupStaleOrders 立即清理过期未支付订单
// @Summary 清理过期未支付订单
// @Tags 管理端-订单
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/admin/orders/cleanup [post]
func (h *OrderHandler) CleanupStaleOrders(c *gin.Context) {
	deleted, err := h.orderAdminService.CleanupStaleOrders(c.Request.Context())
	handler.MustSucceed(c, err, gin.H{"deleted": deleted})
}
