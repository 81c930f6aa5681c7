package admin

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	contentService "github.com/chensiyuan/home-textile-mall-backend/internal/service/content"
)

// ContentHandler 公告与订阅管理处理器
type ContentHandler struct {
	announcementService *contentService.AnnouncementService
	newsletterService   *contentService.NewsletterService
}

// NewContentHandler 创建公告与订阅管理处理器
func NewContentHandler(
	announcementSvc *contentService.AnnouncementService,
	newsletterSvc *contentService.NewsletterService,
) *ContentHandler {
	return &ContentHandler{
		announcementService: announcementSvc,
		newsletterService:   newsletterSvc,
	}
}

// ListAnnouncements 公告列表
// @Summary 公告列表
// @Tags 管理端-内容
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param status query string false "状态"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/announcements [get]
func (h *ContentHandler) ListAnnouncements(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	status := c.Query("status")

	announcements, total, err := h.announcementService.ListAnnouncements(c.Request.Context(), page, pageSize, status)
	handler.MustSucceedPage(c, err, announcements, total, page, pageSize)
}

// CreateAnnouncement 创建公告
// @Summary 创建公告
// @Tags 管理端-内容
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body content.AnnouncementRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Announcement}
// @Router /api/v1/admin/announcements [post]
func (h *ContentHandler) CreateAnnouncement(c *gin.Context) {
	var req contentService.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	announcement, err := h.announcementService.CreateAnnouncement(c.Request.Context(), &req)
	handler.MustSucceed(c, err, announcement)
}

// UpdateAnnouncement 更新公告
// @Summary 更新公告
// @Tags 管理端-内容
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "公告ID"
// @Param request body content.AnnouncementRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Announcement}
// @Router /api/v1/admin/announcements/{id} [put]
func (h *ContentHandler) UpdateAnnouncement(c *gin.Context) {
	id, ok := handler.ParseID(c, "公告")
	if !ok {
		return
	}

	var req contentService.AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	announcement, err := h.announcementService.UpdateAnnouncement(c.Request.Context(), id, &req)
	handler.MustSucceed(c, err, announcement)
}

// ToggleAnnouncement 启用/停用公告
// @Summary 启用/停用公告
// @Tags 管理端-内容
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "公告ID"
// @Param request body map[string]bool true "active"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/announcements/{id}/toggle [put]
func (h *ContentHandler) ToggleAnnouncement(c *gin.Context) {
	id, ok := handler.ParseID(c, "公告")
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

	err := h.announcementService.ToggleAnnouncement(c.Request.Context(), id, *req.Active)
	handler.MustSucceed(c, err, nil)
}

// DeleteAnnouncement 删除公告
// @Summary 删除公告
// @Tags 管理端-内容
// @Produce json
// @Security Bearer
// @Param id path int true "公告ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/announcements/{id} [delete]
func (h *ContentHandler) DeleteAnnouncement(c *gin.Context) {
	id, ok := handler.ParseID(c, "公告")
	if !ok {
		return
	}

	err := h.announcementService.DeleteAnnouncement(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}

// CheckAnnouncementStatus 手动触发公告过期巡检
// @Summary 手动触发公告过期巡检
// @Tags 管理端-内容
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=map[string]int64}
// @Router /api/v1/admin/announcements/check-status [post]
func (h *ContentHandler) CheckAnnouncementStatus(c *gin.Context) {
	count, err := h.announcementService.DeactivateExpired(c.Request.Context())
	handler.MustSucceed(c, err, gin.H{"deactivated": count})
}

// ListSubscribers 订阅者列表
// @Summary 订阅者列表
// @Tags 管理端-内容
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param subscribed query bool false "仅看订阅中/已退订"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/newsletter/subscribers [get]
func (h *ContentHandler) ListSubscribers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	var subscribed *bool
	if v := c.Query("subscribed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.BadRequest(c, "参数错误")
			return
		}
		subscribed = &b
	}

	subscribers, total, err := h.newsletterService.ListSubscribers(c.Request.Context(), page, pageSize, subscribed)
	handler.MustSucceedPage(c, err, subscribers, total, page, pageSize)
}
