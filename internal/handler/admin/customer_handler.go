package admin

import (
	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
)

// CustomerHandler 客户管理处理器
type CustomerHandler struct {
	customerAdminService *adminService.CustomerAdminService
}

// NewCustomerHandler 创建客户管理处理器
func NewCustomerHandler(customerAdminSvc *adminService.CustomerAdminService) *CustomerHandler {
	return &CustomerHandler{customerAdminService: customerAdminSvc}
}

// ListCustomers 客户列表
// @Summary 客户列表
// @Tags 管理端-客户
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Param keyword query string false "搜索关键词"
// @Param status query string false "账号状态"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/customers [get]
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var req adminService.CustomerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	customers, total, err := h.customerAdminService.ListCustomers(c.Request.Context(), &req)
	handler.MustSucceedPage(c, err, customers, total, req.Page, req.PageSize)
}

// GetCustomer 客户详情
// @Summary 客户详情
// @Tags 管理端-客户
// @Produce json
// @Security Bearer
// @Param id path int true "客户ID"
// @Success 200 {object} response.Response{data=admin.CustomerDetail}
// @Router /api/v1/admin/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := handler.ParseID(c, "客户")
	if !ok {
		return
	}

	detail, err := h.customerAdminService.GetCustomer(c.Request.Context(), id)
	handler.MustSucceed(c, err, detail)
}

// UpdateCustomerStatus 更新客户账号状态
// @Summary 更新客户账号状态
// @Tags 管理端-客户
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "客户ID"
// @Param request body map[string]string true "status"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/customers/{id}/status [put]
func (h *CustomerHandler) UpdateCustomerStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "客户")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	err := h.customerAdminService.UpdateCustomerStatus(c.Request.Context(), id, req.Status)
	handler.MustSucceed(c, err, nil)
}

// DeleteCustomer 删除客户账号
// @Summary 删除客户账号
// @Tags 管理端-客户
// @Produce json
// @Security Bearer
// @Param id path int true "客户ID"
// @Success 200 {object} response.Response
// @Router /api/v1/admin/customers/{id} [delete]
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := handler.ParseID(c, "客户")
	if !ok {
		return
	}

	err := h.customerAdminService.DeleteCustomer(c.Request.Context(), id)
	handler.MustSucceed(c, err, nil)
}
