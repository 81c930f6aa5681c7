package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// CustomerAdminService 客户管理服务
type CustomerAdminService struct {
	userRepo  *repository.UserRepository
	orderRepo *repository.OrderRepository
}

// NewCustomerAdminService 创建客户管理服务
func NewCustomerAdminService(userRepo *repository.UserRepository, orderRepo *repository.OrderRepository) *CustomerAdminService {
	return &CustomerAdminService{
		userRepo:  userRepo,
		orderRepo: orderRepo,
	}
}

// CustomerListRequest 客户列表请求
type CustomerListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	Status   string `form:"status"`
}

// CustomerDetail 客户详情
type CustomerDetail struct {
	User        *models.User     `json:"user"`
	OrderCounts map[string]int64 `json:"order_counts"`
}

// 允许设置的客户状态
var validUserStatuses = map[string]bool{
	models.UserStatusActive:  true,
	models.UserStatusBlocked: true,
	models.UserStatusBanned:  true,
}

// ListCustomers 客户列表
func (s *CustomerAdminService) ListCustomers(ctx context.Context, req *CustomerListRequest) ([]*models.User, int64, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	users, total, err := s.userRepo.List(ctx, repository.UserListParams{
		Offset:  (req.Page - 1) * req.PageSize,
		Limit:   req.PageSize,
		Keyword: req.Keyword,
		Role:    models.RoleClient,
		Status:  req.Status,
	})
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return users, total, nil
}

// GetCustomer 客户详情（含地址与订单状态统计）
func (s *CustomerAdminService) GetCustomer(ctx context.Context, id int64) (*CustomerDetail, error) {
	user, err := s.userRepo.GetByIDWithAddresses(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	counts, err := s.orderRepo.CountByStatus(ctx, id)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &CustomerDetail{User: user, OrderCounts: counts}, nil
}

// UpdateCustomerStatus 更新客户状态（封禁/解封）
func (s *CustomerAdminService) UpdateCustomerStatus(ctx context.Context, id int64, status string) error {
	if !validUserStatuses[status] {
		return errors.ErrInvalidParams.WithMessage("无效的用户状态")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	// 管理员账户不通过客户接口封禁
	if user.Role == models.RoleAdmin {
		return errors.ErrPermissionDenied
	}

	if err := s.userRepo.UpdateStatus(ctx, id, status); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("客户状态已更新",
		logger.Module("admin"),
		logger.UserID(id),
		logger.Action(status),
	)
	return nil
}

// DeleteCustomer 删除客户账号
func (s *CustomerAdminService) DeleteCustomer(ctx context.Context, id int64) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	// 管理员账户不通过客户接口删除
	if user.Role == models.RoleAdmin {
		return errors.ErrPermissionDenied
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("客户已删除", logger.Module("admin"), logger.UserID(id))
	return nil
}
