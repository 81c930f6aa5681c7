// Package repository 优惠券仓储单元测试
package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
)

func setupCouponTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Coupon{}, &models.CouponUsage{})
	require.NoError(t, err)

	return db
}

func newTestCoupon(code string, endTime time.Time) *models.Coupon {
	return &models.Coupon{
		Code:      code,
		Name:      "测试券",
		Type:      models.CouponTypeFixed,
		Value:     50,
		StartTime: time.Now().Add(-time.Hour),
		EndTime:   endTime,
		IsActive:  true,
	}
}

func TestCouponRepository_CreateAndGetByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	coupon := newTestCoupon("SUMMER50", time.Now().Add(24*time.Hour))
	err := repo.Create(ctx, coupon)
	require.NoError(t, err)
	assert.NotZero(t, coupon.ID)

	found, err := repo.GetByCode(ctx, "SUMMER50")
	require.NoError(t, err)
	assert.Equal(t, coupon.ID, found.ID)

	_, err = repo.GetByCode(ctx, "不存在")
	assert.Error(t, err)
}

func TestCouponRepository_ExistsByCode(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	db.Create(newTestCoupon("EXIST50", time.Now().Add(time.Hour)))

	exists, err := repo.ExistsByCode(ctx, "EXIST50")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "MISSING")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCouponRepository_ListAvailable(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()
	now := time.Now()

	db.Create(newTestCoupon("AVAILABLE", now.Add(time.Hour)))

	expired := newTestCoupon("EXPIRED", now.Add(-time.Minute))
	db.Create(expired)

	inactive := newTestCoupon("INACTIVE", now.Add(time.Hour))
	inactive.IsActive = false
	db.Create(inactive)

	list, err := repo.ListAvailable(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, len(list))
	assert.Equal(t, "AVAILABLE", list[0].Code)
}

func TestCouponRepository_ListExpiringBetween(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()
	now := time.Now()

	db.Create(newTestCoupon("SOON", now.Add(12*time.Hour)))
	db.Create(newTestCoupon("LATER", now.Add(72*time.Hour)))
	db.Create(newTestCoupon("GONE", now.Add(-time.Hour)))

	list, err := repo.ListExpiringBetween(ctx, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, len(list))
	assert.Equal(t, "SOON", list[0].Code)
}

func TestCouponRepository_SetActive(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	coupon := newTestCoupon("TOGGLE", time.Now().Add(time.Hour))
	db.Create(coupon)

	err := repo.SetActive(ctx, coupon.ID, false)
	require.NoError(t, err)

	var found models.Coupon
	db.First(&found, coupon.ID)
	assert.False(t, found.IsActive)

	err = repo.SetActive(ctx, 9999, true)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ==================== 使用记录测试 ====================

func TestCouponRepository_RecordUsage(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	coupon := newTestCoupon("USE50", time.Now().Add(time.Hour))
	db.Create(coupon)

	usage := &models.CouponUsage{CouponID: coupon.ID, UserID: 1, OrderID: 100}
	err := repo.RecordUsage(ctx, usage)
	require.NoError(t, err)
	assert.NotZero(t, usage.ID)

	// 使用次数同步累加
	var found models.Coupon
	db.First(&found, coupon.ID)
	assert.Equal(t, 1, found.UsedCount)
}

func TestCouponRepository_CountUsageByUser(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	coupon := newTestCoupon("COUNT50", time.Now().Add(time.Hour))
	db.Create(coupon)

	db.Create(&models.CouponUsage{CouponID: coupon.ID, UserID: 1, OrderID: 100})
	db.Create(&models.CouponUsage{CouponID: coupon.ID, UserID: 1, OrderID: 101})
	db.Create(&models.CouponUsage{CouponID: coupon.ID, UserID: 2, OrderID: 102})

	count, err := repo.CountUsageByUser(ctx, coupon.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountUsageByUser(ctx, coupon.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestCouponRepository_List(t *testing.T) {
	db := setupCouponTestDB(t)
	repo := NewCouponRepository(db)
	ctx := context.Background()

	db.Create(newTestCoupon("SPRING10", time.Now().Add(time.Hour)))
	percent := newTestCoupon("PCT20", time.Now().Add(time.Hour))
	percent.Type = models.CouponTypePercent
	percent.IsActive = false
	db.Create(percent)

	// 按关键词
	_, total, err := repo.List(ctx, CouponListParams{Offset: 0, Limit: 10, Keyword: "SPRING"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 按启停状态
	_, total, err = repo.List(ctx, CouponListParams{Offset: 0, Limit: 10, IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	// 按类型
	_, total, err = repo.List(ctx, CouponListParams{Offset: 0, Limit: 10, Type: models.CouponTypePercent})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
