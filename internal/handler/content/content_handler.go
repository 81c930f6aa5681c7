// Package content 提供公告与订阅相关的 HTTP Handler
package content

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	contentService "github.com/chensiyuan/home-textile-mall-backend/internal/service/content"
)

// ContentHandler 内容处理器
type ContentHandler struct {
	announcementService *contentService.AnnouncementService
	newsletterService   *contentService.NewsletterService
}

// NewContentHandler 创建内容处理器
func NewContentHandler(
	announcementSvc *contentService.AnnouncementService,
	newsletterSvc *contentService.NewsletterService,
) *ContentHandler {
	return &ContentHandler{
		announcementService: announcementSvc,
		newsletterService:   newsletterSvc,
	}
}

// GetActiveAnnouncements 获取生效中的公告
// @Summary 获取生效中的公告
// @Tags 内容
// @Produce json
// @Success 200 {object} response.Response{data=[]models.Announcement}
// @Router /api/v1/announcements [get]
func (h *ContentHandler) GetActiveAnnouncements(c *gin.Context) {
	announcements, err := h.announcementService.ListActiveAnnouncements(c.Request.Context())
	handler.MustSucceed(c, err, announcements)
}

// Subscribe 订阅邮件通讯
// @Summary 订阅邮件通讯
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body content.SubscribeRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/newsletter/subscribe [post]
func (h *ContentHandler) Subscribe(c *gin.Context) {
	var req contentService.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	_, err := h.newsletterService.Subscribe(c.Request.Context(), req.Email)
	handler.MustSucceedWithMessage(c, err, "订阅成功", nil)
}

// Unsubscribe 退订邮件通讯
// @Summary 退订邮件通讯
// @Tags 内容
// @Accept json
// @Produce json
// @Param request body content.SubscribeRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/newsletter/unsubscribe [post]
func (h *ContentHandler) Unsubscribe(c *gin.Context) {
	var req contentService.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email)
	handler.MustSucceedWithMessage(c, err, "退订成功", nil)
}
