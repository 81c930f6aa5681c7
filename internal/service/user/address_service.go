// Package user 提供用户服务
package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// 单用户地址数量上限
const maxAddressesPerUser = 20

// AddressService 收货地址服务
type AddressService struct {
	addressRepo *repository.AddressRepository
}

// NewAddressService 创建收货地址服务
func NewAddressService(addressRepo *repository.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

// AddressRequest 地址创建/更新请求
type AddressRequest struct {
	ReceiverName  string  `json:"receiver_name" binding:"required,max=50"`
	ReceiverPhone string  `json:"receiver_phone" binding:"required"`
	Province      string  `json:"province" binding:"required"`
	City          string  `json:"city" binding:"required"`
	District      string  `json:"district" binding:"required"`
	Detail        string  `json:"detail" binding:"required,max=255"`
	PostalCode    *string `json:"postal_code,omitempty"`
	IsDefault     bool    `json:"is_default"`
}

// ListAddresses 获取地址列表
func (s *AddressService) ListAddresses(ctx context.Context, userID int64) ([]*models.Address, error) {
	addresses, err := s.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return addresses, nil
}

// GetAddress 获取地址详情
func (s *AddressService) GetAddress(ctx context.Context, id, userID int64) (*models.Address, error) {
	address, err := s.addressRepo.GetByIDAndUserID(ctx, id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAddressNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return address, nil
}

// CreateAddress 创建地址
func (s *AddressService) CreateAddress(ctx context.Context, userID int64, req *AddressRequest) (*models.Address, error) {
	count, err := s.addressRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	if count >= maxAddressesPerUser {
		return nil, errors.ErrAddressLimitExceed
	}

	address := &models.Address{
		UserID:        userID,
		ReceiverName:  req.ReceiverName,
		ReceiverPhone: req.ReceiverPhone,
		Province:      req.Province,
		City:          req.City,
		District:      req.District,
		Detail:        req.Detail,
		PostalCode:    req.PostalCode,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 首个地址或显式要求时设为默认
	if req.IsDefault || count == 0 {
		if err := s.addressRepo.SetDefault(ctx, address.ID, userID); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		address.IsDefault = true
	}

	return address, nil
}

// UpdateAddress 更新地址
func (s *AddressService) UpdateAddress(ctx context.Context, id, userID int64, req *AddressRequest) (*models.Address, error) {
	address, err := s.GetAddress(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	address.ReceiverName = req.ReceiverName
	address.ReceiverPhone = req.ReceiverPhone
	address.Province = req.Province
	address.City = req.City
	address.District = req.District
	address.Detail = req.Detail
	address.PostalCode = req.PostalCode

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	if req.IsDefault && !address.IsDefault {
		if err := s.addressRepo.SetDefault(ctx, address.ID, userID); err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		address.IsDefault = true
	}

	return address, nil
}

// DeleteAddress 删除地址
func (s *AddressService) DeleteAddress(ctx context.Context, id, userID int64) error {
	if err := s.addressRepo.Delete(ctx, id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAddressNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// SetDefaultAddress 设置默认地址
func (s *AddressService) SetDefaultAddress(ctx context.Context, id, userID int64) error {
	if err := s.addressRepo.SetDefault(ctx, id, userID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrAddressNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}
