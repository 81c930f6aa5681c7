package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	"github.com/chensiyuan/home-textile-mall-backend/internal/scheduler"
)

// DealMonitorHandler 特惠巡检管理处理器
type DealMonitorHandler struct {
	monitor *scheduler.DealMonitor
}

// NewDealMonitorHandler 创建特惠巡检管理处理器
func NewDealMonitorHandler(monitor *scheduler.DealMonitor) *DealMonitorHandler {
	return &DealMonitorHandler{monitor: monitor}
}

// Start 启动特惠巡检
// @Summary 启动特惠巡检
// @Tags 管理端-特惠巡检
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/admin/deal-monitor [post]
func (h *DealMonitorHandler) Start(c *gin.Context) {
	err := h.monitor.Start(c.Request.Context())
	handler.MustSucceedWithMessage(c, err, "特惠巡检已启动", nil)
}

// Stop 停止特惠巡检
// @Summary 停止特惠巡检
// @Tags 管理端-特惠巡检
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response
// @Router /api/v1/admin/deal-monitor [delete]
func (h *DealMonitorHandler) Stop(c *gin.Context) {
	err := h.monitor.Stop()
	handler.MustSucceedWithMessage(c, err, "特惠巡检已停止", nil)
}

// Status 特惠巡检状态
// @Summary 特惠巡检状态
// @Tags 管理端-特惠巡检
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/admin/deal-monitor [get]
func (h *DealMonitorHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{"running": h.monitor.IsRunning()})
}
