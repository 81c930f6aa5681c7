// Package user 收货地址服务单元测试
package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func newAddressRequest(receiverName string) *AddressRequest {
	return &AddressRequest{
		ReceiverName:  receiverName,
		ReceiverPhone: "13812345678",
		Province:      "江苏省",
		City:          "南通市",
		District:      "崇川区",
		Detail:        "家纺城 1 号楼",
	}
}

func TestAddressService_CreateAddress_FirstBecomesDefault(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	address, err := service.CreateAddress(ctx, 1, newAddressRequest("张三"))
	require.NoError(t, err)
	assert.True(t, address.IsDefault)

	// 第二个地址默认不是默认地址
	second, err := service.CreateAddress(ctx, 1, newAddressRequest("李四"))
	require.NoError(t, err)
	assert.False(t, second.IsDefault)
}

func TestAddressService_CreateAddress_LimitExceeded(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	for i := 0; i < maxAddressesPerUser; i++ {
		_, err := service.CreateAddress(ctx, 1, newAddressRequest(fmt.Sprintf("收件人%d", i)))
		require.NoError(t, err)
	}

	_, err := service.CreateAddress(ctx, 1, newAddressRequest("超额"))
	assert.Equal(t, errors.ErrAddressLimitExceed, err)
}

func TestAddressService_SetDefaultAddress(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	first, err := service.CreateAddress(ctx, 1, newAddressRequest("张三"))
	require.NoError(t, err)
	second, err := service.CreateAddress(ctx, 1, newAddressRequest("李四"))
	require.NoError(t, err)

	err = service.SetDefaultAddress(ctx, second.ID, 1)
	require.NoError(t, err)

	var found models.Address
	db.First(&found, first.ID)
	assert.False(t, found.IsDefault)
	db.First(&found, second.ID)
	assert.True(t, found.IsDefault)
}

func TestAddressService_SetDefaultAddress_NotFound(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	err := service.SetDefaultAddress(ctx, 9999, 1)
	assert.Equal(t, errors.ErrAddressNotFound, err)
}

func TestAddressService_UpdateAddress_OtherUserDenied(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	address, err := service.CreateAddress(ctx, 1, newAddressRequest("张三"))
	require.NoError(t, err)

	_, err = service.UpdateAddress(ctx, address.ID, 999, newAddressRequest("改名"))
	assert.Equal(t, errors.ErrAddressNotFound, err)
}

func TestAddressService_DeleteAddress(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewAddressService(repository.NewAddressRepository(db))
	ctx := context.Background()

	address, err := service.CreateAddress(ctx, 1, newAddressRequest("张三"))
	require.NoError(t, err)

	err = service.DeleteAddress(ctx, address.ID, 1)
	require.NoError(t, err)

	err = service.DeleteAddress(ctx, address.ID, 1)
	assert.Equal(t, errors.ErrAddressNotFound, err)
}
