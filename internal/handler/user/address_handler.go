package user

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	userService "github.com/chensiyuan/home-textile-mall-backend/internal/service/user"
)

// AddressHandler 收货地址处理器
type AddressHandler struct {
	addressService *userService.AddressService
}

// NewAddressHandler 创建收货地址处理器
func NewAddressHandler(addressSvc *userService.AddressService) *AddressHandler {
	return &AddressHandler{addressService: addressSvc}
}

// ListAddresses 获取地址列表
// @Summary 获取地址列表
// @Tags 地址
// @Produce json
// @Security Bearer
// @Success 200 {object} response.Response{data=[]models.Address}
// @Router /api/v1/user/addresses [get]
func (h *AddressHandler) ListAddresses(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	addresses, err := h.addressService.ListAddresses(c.Request.Context(), userID)
	handler.MustSucceed(c, err, addresses)
}

// CreateAddress 新增地址
// @Summary 新增地址
// @Tags 地址
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body user.AddressRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Address}
// @Router /api/v1/user/addresses [post]
func (h *AddressHandler) CreateAddress(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req userService.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	address, err := h.addressService.CreateAddress(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, address)
}

// UpdateAddress 更新地址
// @Summary 更新地址
// @Tags 地址
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "地址ID"
// @Param request body user.AddressRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Address}
// @Router /api/v1/user/addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "地址")
	if !ok {
		return
	}

	var req userService.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	address, err := h.addressService.UpdateAddress(c.Request.Context(), id, userID, &req)
	handler.MustSucceed(c, err, address)
}

// DeleteAddress 删除地址
// @Summary 删除地址
// @Tags 地址
// @Produce json
// @Security Bearer
// @Param id path int true "地址ID"
// @Success 200 {object} response.Response
// @Router /api/v1/user/addresses/{id} [delete]
func (h *AddressHandler) DeleteAddress(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "地址")
	if !ok {
		return
	}

	err := h.addressService.DeleteAddress(c.Request.Context(), id, userID)
	handler.MustSucceed(c, err, nil)
}

// SetDefaultAddress 设置默认地址
// @Summary 设置默认地址
// @Tags 地址
// @Produce json
// @Security Bearer
// @Param id path int true "地址ID"
// @Success 200 {object} response.Response
// @Router /api/v1/user/addresses/{id}/default [put]
func (h *AddressHandler) SetDefaultAddress(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	id, ok := handler.ParseID(c, "地址")
	if !ok {
		return
	}

	err := h.addressService.SetDefaultAddress(c.Request.Context(), id, userID)
	handler.MustSucceed(c, err, nil)
}
