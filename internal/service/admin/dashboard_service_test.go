// Package admin 仪表盘服务单元测试
package admin

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
		repository.NewVisitRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewNewsletterRepository(db),
		5,
	)
}

func TestDashboardService_GetOverview(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newDashboardService(db)
	ctx := context.Background()

	// 今日访问
	today := time.Now().UTC()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.DailyVisit{
		VisitDate:  todayStart,
		VisitorIDs: models.StringList{"a", "b"},
		Count:      2,
	}).Error)

	// 客户与订单
	user := createAdminCustomer(t, db, "张三", "zhangsan@example.com", models.RoleClient)
	order := createAdminOrder(t, db, user.ID, models.OrderStatusConfirmed, models.PaymentStatusCompleted)
	now := time.Now()
	require.NoError(t, db.Model(order).Updates(map[string]interface{}{"paid_at": now, "actual_amount": 598.0}).Error)

	// 低库存商品
	require.NoError(t, db.Create(&models.Product{
		CategoryID: 1,
		Name:       "库存告急",
		MainImage:  "m.jpg",
		BasePrice:  299,
		Stock:      2,
		Status:     models.ProductStatusOnSale,
	}).Error)

	// 未读通知与订阅
	require.NoError(t, db.Create(&models.AdminNotification{Type: models.NotificationTypeLowStock, Title: "t", Message: "m"}).Error)
	require.NoError(t, db.Create(&models.NewsletterSubscriber{Email: "reader@example.com", IsSubscribed: true, SubscribedAt: now}).Error)

	overview, err := service.GetOverview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TodayVisits)
	assert.Equal(t, int64(1), overview.TodayOrders)
	assert.Equal(t, 598.0, overview.TodaySales)
	assert.Equal(t, int64(1), overview.TodayRegistered)
	assert.Equal(t, int64(1), overview.TotalCustomers)
	assert.Equal(t, int64(1), overview.OrderCounts[models.OrderStatusConfirmed])
	assert.Len(t, overview.LowStockProducts, 1)
	assert.Equal(t, int64(1), overview.UnreadCount)
	assert.Equal(t, int64(1), overview.SubscriberCount)
}

func TestDashboardService_GetVisitTrend(t *testing.T) {
	db := setupAdminTestDB(t)
	service := newDashboardService(db)
	ctx := context.Background()

	today := time.Now().UTC()
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.DailyVisit{
		VisitDate:  todayStart,
		VisitorIDs: models.StringList{"a"},
		Count:      1,
	}).Error)
	require.NoError(t, db.Create(&models.DailyVisit{
		VisitDate:  todayStart.AddDate(0, 0, -2),
		VisitorIDs: models.StringList{"a"},
		Count:      4,
	}).Error)

	points, err := service.GetVisitTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, points, 7)

	// 无记录日期补零，最后一天为今日
	assert.Equal(t, 1, points[6].Visits)
	assert.Equal(t, 4, points[4].Visits)
	assert.Equal(t, 0, points[5].Visits)
}
