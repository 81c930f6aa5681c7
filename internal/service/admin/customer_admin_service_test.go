// Package admin 客户管理服务单元测试
package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func newCustomerService(db *gorm.DB) *CustomerAdminService {
	return NewCustomerAdminService(repository.NewUserRepository(db), repository.NewOrderRepository(db))
}

func createAdminCustomer(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCustomerAdminService_ListCustomers(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		createAdminCustomer(t, db, fmt.Sprintf("客户%d", i), fmt.Sprintf("c%d@example.com", i), models.RoleClient)
	}
	// 管理员不出现在客户列表
	createAdminCustomer(t, db, "管理员", "admin@example.com", models.RoleAdmin)

	users, total, err := service.ListCustomers(ctx, &CustomerListRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)
}

func TestCustomerAdminService_GetCustomer(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	user := createAdminCustomer(t, db, "张三", "zhangsan@example.com", models.RoleClient)
	createAdminOrder(t, db, user.ID, models.OrderStatusCompleted, models.PaymentStatusCompleted)

	detail, err := service.GetCustomer(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "张三", detail.User.Name)
	assert.Equal(t, int64(1), detail.OrderCounts[models.OrderStatusCompleted])

	_, err = service.GetCustomer(ctx, 9999)
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestCustomerAdminService_UpdateCustomerStatus(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	user := createAdminCustomer(t, db, "张三", "zhangsan@example.com", models.RoleClient)

	require.NoError(t, service.UpdateCustomerStatus(ctx, user.ID, models.UserStatusBlocked))
	var found models.User
	db.First(&found, user.ID)
	assert.Equal(t, models.UserStatusBlocked, found.Status)

	err := service.UpdateCustomerStatus(ctx, user.ID, "frozen")
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
}

func TestCustomerAdminService_UpdateCustomerStatus_AdminDenied(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	admin := createAdminCustomer(t, db, "管理员", "admin@example.com", models.RoleAdmin)

	err := service.UpdateCustomerStatus(ctx, admin.ID, models.UserStatusBlocked)
	assert.Equal(t, errors.ErrPermissionDenied, err)
}

func TestCustomerAdminService_DeleteCustomer(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	user := createAdminCustomer(t, db, "李四", "lisi@example.com", models.RoleClient)

	require.NoError(t, service.DeleteCustomer(ctx, user.ID))

	var count int64
	db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCustomerAdminService_DeleteCustomer_AdminDenied(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newCustomerService(db)
	ctx := context.Background()

	admin := createAdminCustomer(t, db, "管理员", "admin2@example.com", models.RoleAdmin)

	err := service.DeleteCustomer(ctx, admin.ID)
	assert.Equal(t, errors.ErrPermissionDenied, err)
}
