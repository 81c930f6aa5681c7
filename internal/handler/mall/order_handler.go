package mall

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	mallService "github.com/chensiyuan/home-textile-mall-backend/internal/service/mall"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	orderService *mallService.OrderService
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(orderSvc *mallService.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderSvc}
}

// Checkout 下单
// @Summary 下单
// @Tags 订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body mall.CheckoutRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Order}
// @Router /api/v1/orders [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req mallService.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	order, err := h.orderService.Checkout(c.Request.Context(), userID, &req)
	handler.MustSucceedWithMessage(c, err, "下单成功", order)
}

// GetOrder 获取订单详情
// @Summary 获取订单详情
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response{data=models.Order}
// @Router /api/v1/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), orderID, userID)
	handler.MustSucceed(c, err, order)
}

// ListOrders 获取我的订单列表
// @Summary 获取我的订单列表
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "订单状态"
// @Success 200 {object} response.Response{data=mall.OrderListResponse}
// @Router /api/v1/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req mallService.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, result)
}

// CancelOrder 取消订单
// @Summary 取消订单
// @Tags 订单
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Success 200 {object} response.Response
// @Router /api/v1/orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	err := h.orderService.CancelOrder(c.Request.Context(), orderID, userID)
	handler.MustSucceedWithMessage(c, err, "订单已取消", nil)
}

// PayOrder 支付订单
// @Summary 支付订单
// @Tags 订单
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "订单ID"
// @Param request body map[string]string true "transaction_id"
// @Success 200 {object} response.Response
// @Router /api/v1/orders/{id}/pay [post]
func (h *OrderHandler) PayOrder(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	orderID, ok := handler.ParseID(c, "订单")
	if !ok {
		return
	}

	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.orderService.PayOrder(c.Request.Context(), orderID, userID, req.TransactionID)
	handler.MustSucceedWithMessage(c, err, "支付成功", nil)
}

// GetOrderStatusCounts 获取我的订单状态统计
// @Summary 获取我的订单状态统计
// @Tags 订单
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/user/order-counts [get]
func (h *OrderHandler) GetOrderStatusCounts(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	counts, err := h.orderService.GetOrderStatusCounts(c.Request.Context(), userID)
	handler.MustSucceed(c, err, counts)
}
