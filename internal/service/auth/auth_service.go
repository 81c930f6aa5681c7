// Package auth 提供认证服务
package auth

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/crypto"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/jwt"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	"github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
)

// AuthService 认证服务
type AuthService struct {
	userRepo   *repository.UserRepository
	jwtManager *jwt.Manager
	notifier   *notify.NotifierService // 可为 nil
}

// NewAuthService 创建认证服务
func NewAuthService(userRepo *repository.UserRepository, jwtManager *jwt.Manager, notifier *notify.NotifierService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		notifier:   notifier,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required,max=50"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=72"`
	Phone    *string `json:"phone,omitempty"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User      *UserInfo      `json:"user"`
	TokenPair *jwt.TokenPair `json:"token"`
}

// UserInfo 用户信息
type UserInfo struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       *string    `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Register 注册客户账号
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*LoginResponse, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, errors.ErrEmailInvalid
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
		Role:         models.RoleClient,
		Status:       models.UserStatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, jwt.UserTypeClient, user.Role)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	// 通知失败不影响注册结果
	if s.notifier != nil {
		if _, err := s.notifier.EmitNewRegistration(ctx, user); err != nil {
			logger.Warn("新注册通知发送失败", logger.Module("auth"), logger.Err(err))
		}
	}

	return &LoginResponse{User: s.toUserInfo(user), TokenPair: tokenPair}, nil
}

// Login 客户登录
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return s.login(ctx, req, models.RoleClient)
}

// AdminLogin 管理员登录
func (s *AuthService) AdminLogin(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	return s.login(ctx, req, models.RoleAdmin)
}

// login 按角色登录
func (s *AuthService) login(ctx context.Context, req *LoginRequest, role string) (*LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// 不暴露账号是否存在
			return nil, errors.ErrPasswordError
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, errors.ErrPasswordError
	}

	if user.Role != role {
		return nil, errors.ErrPermissionDenied
	}
	if user.Status != models.UserStatusActive {
		return nil, errors.ErrAccountDisabled
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	user.LastLoginAt = &now

	userType := jwt.UserTypeClient
	if user.Role == models.RoleAdmin {
		userType = jwt.UserTypeAdmin
	}

	tokenPair, err := s.jwtManager.GenerateTokenPair(user.ID, userType, user.Role)
	if err != nil {
		return nil, errors.ErrInternalError.WithError(err)
	}

	return &LoginResponse{User: s.toUserInfo(user), TokenPair: tokenPair}, nil
}

// RefreshToken 刷新令牌
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	tokenPair, err := s.jwtManager.RefreshToken(refreshToken)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, errors.ErrTokenExpired
		}
		return nil, errors.ErrTokenInvalid
	}
	return tokenPair, nil
}

// GetUserByID 根据 ID 获取用户
func (s *AuthService) GetUserByID(ctx context.Context, userID int64) (*UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.toUserInfo(user), nil
}

// toUserInfo 转换为用户信息
func (s *AuthService) toUserInfo(user *models.User) *UserInfo {
	return &UserInfo{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		Status:      user.Status,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
