package admin

import (
	"context"
	"time"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// DashboardService 运营仪表盘服务
type DashboardService struct {
	orderRepo         *repository.OrderRepository
	productRepo       *repository.ProductRepository
	userRepo          *repository.UserRepository
	visitRepo         *repository.VisitRepository
	notificationRepo  *repository.NotificationRepository
	newsletterRepo    *repository.NewsletterRepository
	lowStockThreshold int
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(
	orderRepo *repository.OrderRepository,
	productRepo *repository.ProductRepository,
	userRepo *repository.UserRepository,
	visitRepo *repository.VisitRepository,
	notificationRepo *repository.NotificationRepository,
	newsletterRepo *repository.NewsletterRepository,
	lowStockThreshold int,
) *DashboardService {
	if lowStockThreshold <= 0 {
		lowStockThreshold = 5
	}
	return &DashboardService{
		orderRepo:         orderRepo,
		productRepo:       productRepo,
		userRepo:          userRepo,
		visitRepo:         visitRepo,
		notificationRepo:  notificationRepo,
		newsletterRepo:    newsletterRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

// DashboardOverview 仪表盘概览
type DashboardOverview struct {
	TodayVisits       int               `json:"today_visits"`
	TodayOrders       int64             `json:"today_orders"`
	TodaySales        float64           `json:"today_sales"`
	TodayRegistered   int64             `json:"today_registered"`
	TotalCustomers    int64             `json:"total_customers"`
	OrderCounts       map[string]int64  `json:"order_counts"`
	LowStockProducts  []*models.Product `json:"low_stock_products"`
	UnreadCount       int64             `json:"unread_count"`
	SubscriberCount   int64             `json:"subscriber_count"`
}

// GetOverview 获取仪表盘概览
func (s *DashboardService) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	now := time.Now()
	dayStart := utils.DayStart(now)
	overview := &DashboardOverview{}

	if visit, err := s.visitRepo.GetByDate(ctx, utils.DayStart(now.UTC())); err == nil {
		overview.TodayVisits = visit.Count
	}

	todayOrders, err := s.orderRepo.CountCreatedSince(ctx, dayStart)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.TodayOrders = todayOrders

	todaySales, err := s.orderRepo.SumPaidAmount(ctx, dayStart)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.TodaySales = todaySales

	todayRegistered, err := s.userRepo.CountRegisteredSince(ctx, dayStart)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.TodayRegistered = todayRegistered

	totalCustomers, err := s.userRepo.CountByRole(ctx, models.RoleClient)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.TotalCustomers = totalCustomers

	orderCounts, err := s.orderRepo.CountByStatus(ctx, 0)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.OrderCounts = orderCounts

	lowStock, err := s.productRepo.ListLowStock(ctx, s.lowStockThreshold)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.LowStockProducts = lowStock

	unread, err := s.notificationRepo.CountUnread(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.UnreadCount = unread

	subscribers, err := s.newsletterRepo.CountSubscribed(ctx)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	overview.SubscriberCount = subscribers

	return overview, nil
}

// SalesTrendPoint 销售趋势点
type SalesTrendPoint struct {
	Date   string  `json:"date"`
	Visits int     `json:"visits"`
	Sales  float64 `json:"sales,omitempty"`
}

// GetVisitTrend 获取最近 N 天的访问趋势
func (s *DashboardService) GetVisitTrend(ctx context.Context, days int) ([]*SalesTrendPoint, error) {
	if days <= 0 || days > 90 {
		days = 7
	}

	end := utils.DayStart(time.Now().UTC())
	start := end.AddDate(0, 0, -(days - 1))

	visits, err := s.visitRepo.ListRange(ctx, start, end)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	byDate := make(map[string]int, len(visits))
	for _, v := range visits {
		byDate[v.VisitDate.Format("2006-01-02")] = v.Count
	}

	// 无记录的日期补零
	points := make([]*SalesTrendPoint, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		points = append(points, &SalesTrendPoint{Date: key, Visits: byDate[key]})
	}
	return points, nil
}
