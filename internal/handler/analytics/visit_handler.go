// Package analytics 提供访问统计相关的 HTTP Handler
package analytics

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	analyticsService "github.com/chensiyuan/home-textile-mall-backend/internal/service/analytics"
)

// VisitHandler 访问统计处理器
type VisitHandler struct {
	visitService *analyticsService.VisitService
}

// NewVisitHandler 创建访问统计处理器
func NewVisitHandler(visitSvc *analyticsService.VisitService) *VisitHandler {
	return &VisitHandler{visitService: visitSvc}
}

// RecordVisit 记录一次访问。同一访客当日只计一次
// @Summary 记录访问
// @Tags 统计
// @Accept json
// @Produce json
// @Param request body map[string]string true "visitor_id"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/visits [post]
func (h *VisitHandler) RecordVisit(c *gin.Context) {
	var req struct {
		VisitorID string `json:"visitor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	counted, err := h.visitService.RecordVisit(c.Request.Context(), req.VisitorID)
	handler.MustSucceed(c, err, gin.H{"counted": counted})
}
