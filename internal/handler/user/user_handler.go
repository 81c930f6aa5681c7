// Package user 提供用户相关的 HTTP Handler
package user

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	userService "github.com/chensiyuan/home-textile-mall-backend/internal/service/user"
)

// UserHandler 用户处理器
type UserHandler struct {
	userService *userService.UserService
}

// NewUserHandler 创建用户处理器
func NewUserHandler(userSvc *userService.UserService) *UserHandler {
	return &UserHandler{userService: userSvc}
}

// GetProfile 获取个人资料
// @Summary 获取个人资料
// @Tags 用户
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=models.User}
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	handler.MustSucceed(c, err, user)
}

// UpdateProfile 更新个人资料
// @Summary 更新个人资料
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body user.UpdateProfileRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.User}
// @Router /api/v1/user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, user)
}

// ChangePassword 修改密码
// @Summary 修改密码
// @Tags 用户
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body user.ChangePasswordRequest true "请求参数"
// @Success 200 {object} response.Response
// @Router /api/v1/user/password [put]
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.userService.ChangePassword(c.Request.Context(), userID, &req)
	handler.MustSucceedWithMessage(c, err, "密码修改成功", nil)
}
