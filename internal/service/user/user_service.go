// Package user 提供用户服务
package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/crypto"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// UserService 用户服务
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name  *string `json:"name,omitempty" binding:"omitempty,max=50"`
	Phone *string `json:"phone,omitempty"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// GetProfile 获取个人资料
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return user, nil
}

// UpdateProfile 更新个人资料
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*models.User, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Phone != nil {
		if !utils.ValidatePhone(*req.Phone) {
			return nil, errors.ErrInvalidParams.WithMessage("无效的手机号")
		}
		fields["phone"] = *req.Phone
	}
	if len(fields) == 0 {
		return s.GetProfile(ctx, userID)
	}

	if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetProfile(ctx, userID)
}

// ChangePassword 修改密码
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.OldPassword, user.PasswordHash) {
		return errors.ErrPasswordError
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return errors.ErrInternalError.WithError(err)
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}
