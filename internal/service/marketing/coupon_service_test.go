// Package marketing 优惠券服务单元测试
package marketing

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func setupCouponService(t *testing.T) (*CouponService, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{})
	require.NoError(t, err)

	service := NewCouponService(repository.NewCouponRepository(db), "https://mall.example.com/coupon")
	return service, db
}

func newCreateRequest(code string) *CreateCouponRequest {
	now := time.Now()
	return &CreateCouponRequest{
		Code:      code,
		Name:      "满 200 减 50",
		Type:      models.CouponTypeFixed,
		Value:     50,
		MinAmount: 200,
		StartTime: now.Add(-time.Hour).Format("2006-01-02 15:04:05"),
		EndTime:   now.Add(24 * time.Hour).Format("2006-01-02 15:04:05"),
	}
}

func TestCouponService_CreateCoupon(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)
	assert.Equal(t, "FULL200", coupon.Code)
	assert.True(t, coupon.IsActive)
	assert.Equal(t, 1, coupon.PerUserLimit)
}

func TestCouponService_CreateCoupon_AutoCode(t *testing.T) {
	service, _ := setupCouponService(t)

	coupon, err := service.CreateCoupon(context.Background(), newCreateRequest(""))
	require.NoError(t, err)
	assert.Len(t, coupon.Code, couponCodeLength)
	// 券码字符集排除易混淆字符
	assert.NotContains(t, coupon.Code, "0")
	assert.NotContains(t, coupon.Code, "O")
	assert.NotContains(t, coupon.Code, "I")
	assert.NotContains(t, coupon.Code, "1")
}

func TestCouponService_CreateCoupon_DuplicateCode(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	_, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	_, err = service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	assert.Equal(t, errors.ErrCouponCodeExists, err)
}

func TestCouponService_CreateCoupon_InvalidDateRange(t *testing.T) {
	service, _ := setupCouponService(t)

	req := newCreateRequest("FULL200")
	req.StartTime, req.EndTime = req.EndTime, req.StartTime
	_, err := service.CreateCoupon(context.Background(), req)
	assert.Equal(t, errors.ErrDateRangeInvalid, err)
}

func TestCouponService_UpdateCoupon(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	name := "改名券"
	value := 66.0
	updated, err := service.UpdateCoupon(ctx, coupon.ID, &UpdateCouponRequest{Name: &name, Value: &value})
	require.NoError(t, err)
	assert.Equal(t, "改名券", updated.Name)
	assert.Equal(t, 66.0, updated.Value)
}

func TestCouponService_UpdateCoupon_InvalidRange(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	// 结束时间早于开始时间
	end := time.Now().Add(-48 * time.Hour).Format("2006-01-02 15:04:05")
	_, err = service.UpdateCoupon(ctx, coupon.ID, &UpdateCouponRequest{EndTime: &end})
	assert.Equal(t, errors.ErrDateRangeInvalid, err)
}

func TestCouponService_ToggleCoupon(t *testing.T) {
	service, db := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	require.NoError(t, service.ToggleCoupon(ctx, coupon.ID, false))
	var found models.Coupon
	db.First(&found, coupon.ID)
	assert.False(t, found.IsActive)

	require.NoError(t, service.ToggleCoupon(ctx, coupon.ID, true))
	db.First(&found, coupon.ID)
	assert.True(t, found.IsActive)
}

func TestCouponService_ToggleCoupon_ExpiredDenied(t *testing.T) {
	service, db := setupCouponService(t)
	ctx := context.Background()

	now := time.Now()
	coupon := &models.Coupon{
		Code:      "OLD",
		Name:      "过期券",
		Type:      models.CouponTypeFixed,
		Value:     10,
		StartTime: now.Add(-48 * time.Hour),
		EndTime:   now.Add(-time.Hour),
		IsActive:  false,
	}
	require.NoError(t, db.Create(coupon).Error)

	err := service.ToggleCoupon(ctx, coupon.ID, true)
	assert.Equal(t, errors.ErrCouponExpired, err)
}

func TestCouponService_ToggleCoupon_NotFound(t *testing.T) {
	service, _ := setupCouponService(t)

	err := service.ToggleCoupon(context.Background(), 9999, false)
	assert.Equal(t, errors.ErrCouponNotFound, err)
}

func TestCouponService_ListCoupons(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	for _, code := range []string{"A1", "A2", "A3"} {
		req := newCreateRequest(code)
		req.Name = "批量券 " + code
		_, err := service.CreateCoupon(ctx, req)
		require.NoError(t, err)
	}

	resp, err := service.ListCoupons(ctx, &CouponListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.List, 2)
}

func TestCouponService_DeleteCoupon(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	require.NoError(t, service.DeleteCoupon(ctx, coupon.ID))

	_, err = service.GetCoupon(ctx, coupon.ID)
	assert.Equal(t, errors.ErrCouponNotFound, err)
}

func TestCouponService_GenerateShareQRCode(t *testing.T) {
	service, _ := setupCouponService(t)
	ctx := context.Background()

	coupon, err := service.CreateCoupon(ctx, newCreateRequest("FULL200"))
	require.NoError(t, err)

	dataURL, err := service.GenerateShareQRCode(ctx, coupon.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
}
