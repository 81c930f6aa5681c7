package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	notifyService "github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
)

// NotificationHandler 通知管理处理器
type NotificationHandler struct {
	notificationService *notifyService.NotificationService
}

// NewNotificationHandler 创建通知管理处理器
func NewNotificationHandler(notificationSvc *notifyService.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationSvc}
}

// ListNotifications 通知列表
// @Summary 通知列表
// @Tags 管理端-通知
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param type query string false "通知类型"
// @Param is_read query bool false "是否已读"
// @Success 200 {object} response.Response{data=notify.NotificationListResponse}
// @Router /api/v1/admin/notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req notifyService.NotificationListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	result, err := h.notificationService.ListNotifications(c.Request.Context(), &req)
	handler.MustSucceed(c, err, result)
}

// MarkAsRead 标记通知已读
// @Summary 标记通知已读
// @Tags 管理端-通知
// @Produce json
// @Security Bearer
// @Param id path int true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := handler.ParseID(c, "通知")
	if !ok {
		return
	}

	err := h.notificationService.MarkAsRead(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}

// MarkAllAsRead 全部标记已读
// @Summary 全部标记已读
// @Tags 管理端-通知
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/admin/notifications/read-all [post]
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	err := h.notificationService.MarkAllAsRead(c.Request.Context())
	handler.MustSucceed(c, err, nil)
}

// DeleteNotification 删除通知
// @Summary 删除通知
// @Tags 管理端-通知
// @Produce json
// @Security Bearer
// @Param id path int true "通知ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/notifications/{id} [delete]
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	id, ok := handler.ParseID(c, "通知")
	if !ok {
		return
	}

	err := h.notificationService.DeleteNotification(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}

// CountUnread 未读通知数
// @Summary 未读通知数
// @Tags 管理端-通知
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/admin/notifications/unread-count [get]
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	count, err := h.notificationService.CountUnread(c.Request.Context())
	handler.MustSucceed(c, err, gin.H{"count": count})
}
