package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
)

// ReviewHandler 评价管理处理器
type ReviewHandler struct {
	reviewAdminService *adminService.ReviewAdminService
}

// NewReviewHandler 创建评价管理处理器
func NewReviewHandler(reviewAdminSvc *adminService.ReviewAdminService) *ReviewHandler {
	return &ReviewHandler{reviewAdminService: reviewAdminSvc}
}

// ListReviews 评价列表（含隐藏评价）
// @Summary 评价列表
// @Tags 管理端-评价
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param product_id query int false "商品ID"
// @Param is_visible query bool false "是否可见"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	var req adminService.ReviewAdminListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	reviews, total, err := h.reviewAdminService.ListReviews(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, reviews, total, req.Page, req.PageSize)
}

// SetVisible 设置评价可见性
// @Summary 设置评价可见性
// @Tags 管理端-评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Param request body map[string]bool true "visible"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/reviews/{id}/visible [put]
func (h *ReviewHandler) SetVisible(c *gin.Context) {
	id, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	var req struct {
		Visible *bool `json:"visible" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.reviewAdminService.SetVisible(c.Request.Context(), id, *req.Visible)
	handler.MustSucceed(c, err, nil)
}

// SetFeatured 设置精选评价
// @Summary 设置精选评价
// @Tags 管理端-评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Param request body map[string]bool true "featured"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/reviews/{id}/featured [put]
func (h *ReviewHandler) SetFeatured(c *gin.Context) {
	id, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	var req struct {
		Featured *bool `json:"featured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.reviewAdminService.SetFeatured(c.Request.Context(), id, *req.Featured)
	handler.MustSucceed(c, err, nil)
}

// SetAdminNote 设置管理员备注
// @Summary 设置管理员备注
// @Tags 管理端-评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Param request body map[string]string true "note"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/reviews/{id}/note [put]
func (h *ReviewHandler) SetAdminNote(c *gin.Context) {
	id, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	var req struct {
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.reviewAdminService.SetAdminNote(c.Request.Context(), id, req.Note)
	handler.MustSucceed(c, err, nil)
}

// DeleteReview 删除评价
// @Summary 删除评价
// @Tags 管理端-评价
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	err := h.reviewAdminService.DeleteReview(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}
