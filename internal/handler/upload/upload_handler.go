// Package upload 提供文件上传相关的 HTTP Handler
package upload

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	uploadService "github.com/chensiyuan/home-textile-mall-backend/internal/service/upload"
)

// UploadHandler 上传处理器
type UploadHandler struct {
	uploadService *uploadService.UploadService
}

// NewUploadHandler 创建上传处理器
func NewUploadHandler(uploadSvc *uploadService.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadSvc}
}

// UploadImage 上传图片
// @Summary 上传图片
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "图片文件"
// @Param type formData string false "文件类型（product/review 等）"
// @Success 200 {object} response.Response{data=upload.UploadImageResponse}
// @Router /api/v1/upload/image [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	if _, ok := handler.RequireUserID(c); !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), &uploadService.UploadImageRequest{
		File:     file,
		FileType: c.PostForm("type"),
	})
	handler.MustSucceed(c, err, result)
}

// UploadAvatar 上传头像
// @Summary 上传头像
// @Tags 上传
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param file formData file true "头像文件"
// @Success 200 {object} response.Response{data=upload.UploadImageResponse}
// @Router /api/v1/upload/avatar [post]
func (h *UploadHandler) UploadAvatar(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	result, err := h.uploadService.UploadAvatar(c.Request.Context(), &uploadService.UploadAvatarRequest{
		UserID: userID,
		File:   file,
	})
	handler.MustSucceed(c, err, result)
}
