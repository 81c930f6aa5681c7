// Package user 用户服务单元测试
package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/crypto"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func setupUserTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Address{})
	require.NoError(t, err)

	return db
}

func createUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	hash, err := crypto.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:         "测试用户",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleClient,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserService_GetProfile(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := createUser(t, db, "user@example.com", "password123")

	found, err := service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", found.Email)

	_, err = service.GetProfile(ctx, 9999)
	assert.Equal(t, errors.ErrUserNotFound, err)
}

func TestUserService_UpdateProfile(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := createUser(t, db, "user@example.com", "password123")

	name := "新名字"
	phone := "13812345678"
	updated, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{Name: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "新名字", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, "13812345678", *updated.Phone)
}

func TestUserService_UpdateProfile_InvalidPhone(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := createUser(t, db, "user@example.com", "password123")

	phone := "12345"
	_, err := service.UpdateProfile(ctx, user.ID, &UpdateProfileRequest{Phone: &phone})
	require.Error(t, err)
	assert.Equal(t, errors.ErrInvalidParams.Code, errors.GetAppError(err).Code)
}

func TestUserService_ChangePassword(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := createUser(t, db, "user@example.com", "old-password")

	err := service.ChangePassword(ctx, user.ID, &ChangePasswordRequest{
		OldPassword: "old-password",
		NewPassword: "new-password-123",
	})
	require.NoError(t, err)

	var found models.User
	db.First(&found, user.ID)
	assert.True(t, crypto.VerifyPassword("new-password-123", found.PasswordHash))
}

func TestUserService_ChangePassword_WrongOld(t *testing.T) {
	db := setupUserTestDB(t)
	service := NewUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	user := createUser(t, db, "user@example.com", "old-password")

	err := service.ChangePassword(ctx, user.ID, &ChangePasswordRequest{
		OldPassword: "wrong",
		NewPassword: "new-password-123",
	})
	assert.Equal(t, errors.ErrPasswordError, err)
}
