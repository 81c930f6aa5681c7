package admin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
	analyticsService "github.com/chensiyuan/home-textile-mall-backend/internal/service/analytics"
)

// DashboardHandler 仪表盘处理器
type DashboardHandler struct {
	dashboardService *adminService.DashboardService
	visitService     *analyticsService.VisitService
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(
	dashboardSvc *adminService.DashboardService,
	visitSvc *analyticsService.VisitService,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardSvc,
		visitService:     visitSvc,
	}
}

// GetOverview 仪表盘总览
// @Summary 仪表盘总览
// @Tags 管理端-仪表盘
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=admin.DashboardOverview}
// @Router /api/v1/admin/dashboard/overview [get]
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview(c.Request.Context())
	handler.MustSucceed(c, err, overview)
}

// GetVisitTrend 访问趋势
// @Summary 访问趋势
// @Tags 管理端-仪表盘
// @Produce json
// @Security Bearer
// @Param days query int false "天数，默认7"
// @Success 200 {object} response.Response{data=[]admin.SalesTrendPoint}
// @Router /api/v1/admin/dashboard/visit-trend [get]
func (h *DashboardHandler) GetVisitTrend(c *gin.Context) {
	days := parseDays(c, 7)
	points, err := h.dashboardService.GetVisitTrend(c.Request.Context(), days)
	handler.MustSucceed(c, err, points)
}

// GetVisitStats 按日期区间统计访问量
// @Summary 按日期区间统计访问量
// @Tags 管理端-仪表盘
// @Produce json
// @Security Bearer
// @Param start query string true "开始日期 2006-01-02"
// @Param end query string true "结束日期 2006-01-02"
// @Success 200 {object} response.Response{data=[]analytics.VisitStats}
// @Router /api/v1/admin/dashboard/visits [get]
func (h *DashboardHandler) GetVisitStats(c *gin.Context) {
	start, err := time.ParseInLocation("2006-01-02", c.Query("start"), time.UTC)
	if err != nil {
		response.BadRequest(c, "无效的开始日期")
		return
	}
	end, err := time.ParseInLocation("2006-01-02", c.Query("end"), time.UTC)
	if err != nil {
		response.BadRequest(c, "无效的结束日期")
		return
	}

	stats, err := h.visitService.GetRangeStats(c.Request.Context(), start, end)
	handler.MustSucceed(c, err, stats)
}
