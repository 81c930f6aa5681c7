// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/config"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/jwt"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/metrics"
	adminHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/admin"
	analyticsHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/analytics"
	authHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/auth"
	contentHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/content"
	mallHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/mall"
	marketingHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/marketing"
	uploadHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/upload"
	userHandler "github.com/chensiyuan/home-textile-mall-backend/internal/handler/user"
	"github.com/chensiyuan/home-textile-mall-backend/internal/middleware"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
	"github.com/chensiyuan/home-textile-mall-backend/internal/scheduler"
	adminService "github.com/chensiyuan/home-textile-mall-backend/internal/service/admin"
	analyticsService "github.com/chensiyuan/home-textile-mall-backend/internal/service/analytics"
	authService "github.com/chensiyuan/home-textile-mall-backend/internal/service/auth"
	contentService "github.com/chensiyuan/home-textile-mall-backend/internal/service/content"
	mallService "github.com/chensiyuan/home-textile-mall-backend/internal/service/mall"
	marketingService "github.com/chensiyuan/home-textile-mall-backend/internal/service/marketing"
	notifyService "github.com/chensiyuan/home-textile-mall-backend/internal/service/notify"
	uploadService "github.com/chensiyuan/home-textile-mall-backend/internal/service/upload"
	userService "github.com/chensiyuan/home-textile-mall-backend/internal/service/user"
	"github.com/chensiyuan/home-textile-mall-backend/pkg/oss"
)

// setupRouter 设置路由并组装后台任务，返回调度器与特惠巡检器
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) (*scheduler.Scheduler, *scheduler.DealMonitor) {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	userRepo := repository.NewUserRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	sizeRepo := repository.NewProductSizeRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	visitRepo := repository.NewVisitRepository(db)

	// 初始化对象存储
	var uploader oss.Uploader
	if cfg.OSS.Provider == "aliyun" {
		aliyunUploader, err := oss.NewAliyunUploader(&oss.AliyunConfig{
			Endpoint:        cfg.OSS.Endpoint,
			AccessKeyID:     cfg.OSS.AccessKeyID,
			AccessKeySecret: cfg.OSS.AccessKeySecret,
			BucketName:      cfg.OSS.Bucket,
			Domain:          cfg.OSS.CustomDomain,
			BasePath:        cfg.OSS.UploadDir,
		})
		if err != nil {
			logger.Fatal("初始化 OSS 失败", zap.Error(err))
		}
		uploader = aliyunUploader
	} else {
		// 开发环境使用 Mock
		uploader = oss.NewMockUploader()
	}

	// 初始化服务
	notifierSvc := notifyService.NewNotifierService(notificationRepo,
		time.Duration(cfg.Business.Inventory.NotifyDedupWindow)*time.Hour)
	notificationSvc := notifyService.NewNotificationService(notificationRepo)
	authSvc := authService.NewAuthService(userRepo, jwtManager, notifierSvc)
	userSvc := userService.NewUserService(userRepo)
	addressSvc := userService.NewAddressService(addressRepo)
	productSvc := mallService.NewProductService(productRepo, sizeRepo, categoryRepo, reviewRepo, redisClient)
	reviewSvc := mallService.NewReviewService(reviewRepo, productRepo, orderRepo)
	orderSvc := mallService.NewOrderService(orderRepo, productRepo, sizeRepo, addressRepo, couponRepo, notifierSvc)
	couponSvc := marketingService.NewCouponService(couponRepo, cfg.Server.ShareBaseURL)
	announcementSvc := contentService.NewAnnouncementService(announcementRepo)
	newsletterSvc := contentService.NewNewsletterService(newsletterRepo, notifierSvc)
	visitSvc := analyticsService.NewVisitService(visitRepo, redisClient)
	uploadSvc := uploadService.NewUploadService(uploader, userRepo)

	productAdminSvc := adminService.NewProductAdminService(productRepo, sizeRepo, categoryRepo)
	orderAdminSvc := adminService.NewOrderAdminService(orderRepo, cfg.Business.Order.StaleCutoffHours)
	reviewAdminSvc := adminService.NewReviewAdminService(reviewRepo)
	customerAdminSvc := adminService.NewCustomerAdminService(userRepo, orderRepo)
	dashboardSvc := adminService.NewDashboardService(
		orderRepo, productRepo, userRepo, visitRepo, notificationRepo, newsletterRepo,
		cfg.Business.Inventory.LowStockThreshold,
	)

	// 后台任务
	taskHandler := scheduler.NewTaskHandler(
		productRepo, orderRepo, couponRepo, announcementRepo, notifierSvc, &cfg.Business)
	sched := scheduler.NewScheduler()
	scheduler.SetupTasks(sched, taskHandler)
	dealMonitor := scheduler.NewDealMonitor(
		taskHandler,
		cfg.Business.Deal.MonitorDuration(),
		cfg.Business.Deal.MaxStartRetries,
		cfg.Business.Deal.StartRetryDuration(),
	)

	// 初始化处理器
	authH := authHandler.NewHandler(authSvc)
	userH := userHandler.NewUserHandler(userSvc)
	addressH := userHandler.NewAddressHandler(addressSvc)
	productH := mallHandler.NewProductHandler(productSvc)
	reviewH := mallHandler.NewReviewHandler(reviewSvc)
	orderH := mallHandler.NewOrderHandler(orderSvc)
	couponH := marketingHandler.NewCouponHandler(couponSvc)
	contentH := contentHandler.NewContentHandler(announcementSvc, newsletterSvc)
	visitH := analyticsHandler.NewVisitHandler(visitSvc)
	uploadH := uploadHandler.NewUploadHandler(uploadSvc)

	adminProductH := adminHandler.NewProductHandler(productAdminSvc, productSvc)
	adminOrderH := adminHandler.NewOrderHandler(orderAdminSvc)
	adminReviewH := adminHandler.NewReviewHandler(reviewAdminSvc)
	adminCouponH := adminHandler.NewCouponHandler(couponSvc)
	adminContentH := adminHandler.NewContentHandler(announcementSvc, newsletterSvc)
	adminCustomerH := adminHandler.NewCustomerHandler(customerAdminSvc)
	adminDashboardH := adminHandler.NewDashboardHandler(dashboardSvc, visitSvc)
	adminNotificationH := adminHandler.NewNotificationHandler(notificationSvc)
	adminDealMonitorH := adminHandler.NewDealMonitorHandler(dealMonitor)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.AccessLog(logger))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// 监控指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证与访问统计接口按 IP+路径限流
		authLimiter := middleware.APIRateLimit(redisClient, 10, time.Minute)
		visitLimiter := middleware.APIRateLimit(redisClient, 60, time.Minute)

		// 公开接口（无需认证，携带有效 token 时注入用户身份）
		public := v1.Group("")
		public.Use(middleware.OptionalAuth(jwtManager))
		{
			public.POST("/auth/register", authLimiter, authH.Register)
			public.POST("/auth/login", authLimiter, authH.Login)
			public.POST("/auth/admin/login", authLimiter, authH.AdminLogin)
			public.POST("/auth/refresh", authLimiter, authH.RefreshToken)

			public.GET("/categories", productH.GetCategories)
			public.GET("/products", productH.GetProductList)
			public.GET("/products/:id", productH.GetProductDetail)

			// 首页榜单与特惠（与 /products/:id 路由隔离）
			public.GET("/home/top10", productH.GetTop10)
			public.GET("/home/new", productH.GetNewArrivals)
			public.GET("/home/best-sellers", productH.GetBestSellers)
			public.GET("/home/limited", productH.GetLimitedProducts)
			public.GET("/deals", productH.GetActiveDeals)
			public.GET("/products/:id/reviews", reviewH.GetProductReviews)
			public.GET("/reviews/featured", reviewH.GetFeaturedReviews)

			public.GET("/announcements", contentH.GetActiveAnnouncements)
			public.GET("/coupons", couponH.ListAvailableCoupons)
			public.POST("/newsletter/subscribe", contentH.Subscribe)
			public.POST("/newsletter/unsubscribe", contentH.Unsubscribe)
			public.POST("/visits", visitLimiter, visitH.RecordVisit)
		}

		// 用户端接口（需要用户认证）
		user := v1.Group("")
		user.Use(middleware.ClientAuth(jwtManager))
		{
			user.GET("/auth/me", authH.GetMe)
			user.GET("/user/profile", userH.GetProfile)
			user.PUT("/user/profile", userH.UpdateProfile)
			user.PUT("/user/password", userH.ChangePassword)

			user.GET("/user/addresses", addressH.ListAddresses)
			user.POST("/user/addresses", addressH.CreateAddress)
			user.PUT("/user/addresses/:id", addressH.UpdateAddress)
			user.DELETE("/user/addresses/:id", addressH.DeleteAddress)
			user.PUT("/user/addresses/:id/default", addressH.SetDefaultAddress)

			user.POST("/orders", orderH.Checkout)
			user.GET("/orders", orderH.ListOrders)
			user.GET("/user/order-counts", orderH.GetOrderStatusCounts)
			user.GET("/orders/:id", orderH.GetOrder)
			user.POST("/orders/:id/cancel", orderH.CancelOrder)
			user.POST("/orders/:id/pay", orderH.PayOrder)

			user.POST("/reviews", reviewH.CreateReview)
			user.GET("/user/reviews", reviewH.GetUserReviews)
			user.DELETE("/reviews/:id", reviewH.DeleteReview)

			user.POST("/upload/image", uploadH.UploadImage)
			user.POST("/upload/avatar", uploadH.UploadAvatar)
		}

		// 管理端接口（需要管理员认证）
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(jwtManager, cfg.Server.AdminLoginPath))
		{
			admin.GET("/dashboard/overview", adminDashboardH.GetOverview)
			admin.GET("/dashboard/visit-trend", adminDashboardH.GetVisitTrend)
			admin.GET("/dashboard/visits", adminDashboardH.GetVisitStats)

			admin.GET("/products", adminProductH.ListProducts)
			admin.POST("/products", adminProductH.CreateProduct)
			admin.GET("/products/:id", adminProductH.GetProduct)
			admin.PUT("/products/:id", adminProductH.UpdateProduct)
			admin.DELETE("/products/:id", adminProductH.DeleteProduct)
			admin.PUT("/products/:id/marketing", adminProductH.UpdateMarketingFlags)
			admin.PUT("/products/:id/deal", adminProductH.SetDeal)
			admin.DELETE("/products/:id/deal", adminProductH.ClearDeal)
			admin.POST("/products/:id/sizes", adminProductH.CreateSize)
			admin.PUT("/sizes/:size_id", adminProductH.UpdateSize)
			admin.DELETE("/sizes/:size_id", adminProductH.DeleteSize)

			admin.GET("/orders", adminOrderH.ListOrders)
			admin.POST("/orders/cleanup", adminOrderH.CleanupStaleOrders)
			admin.GET("/orders/:id", adminOrderH.GetOrder)
			admin.PUT("/orders/:id/status", adminOrderH.UpdateOrderStatus)

			admin.GET("/reviews", adminReviewH.ListReviews)
			admin.PUT("/reviews/:id/visible", adminReviewH.SetVisible)
			admin.PUT("/reviews/:id/featured", adminReviewH.SetFeatured)
			admin.PUT("/reviews/:id/note", adminReviewH.SetAdminNote)
			admin.DELETE("/reviews/:id", adminReviewH.DeleteReview)

			admin.GET("/coupons", adminCouponH.ListCoupons)
			admin.POST("/coupons", adminCouponH.CreateCoupon)
			admin.GET("/coupons/:id", adminCouponH.GetCoupon)
			admin.PUT("/coupons/:id", adminCouponH.UpdateCoupon)
			admin.DELETE("/coupons/:id", adminCouponH.DeleteCoupon)
			admin.PUT("/coupons/:id/toggle", adminCouponH.ToggleCoupon)
			admin.GET("/coupons/:id/qrcode", adminCouponH.GetShareQRCode)
			admin.GET("/coupons/:id/usages", adminCouponH.ListUsages)

			admin.GET("/announcements", adminContentH.ListAnnouncements)
			admin.POST("/announcements", adminContentH.CreateAnnouncement)
			admin.PUT("/announcements/:id", adminContentH.UpdateAnnouncement)
			admin.DELETE("/announcements/:id", adminContentH.DeleteAnnouncement)
			admin.PUT("/announcements/:id/toggle", adminContentH.ToggleAnnouncement)
			admin.POST("/announcements/check-status", adminContentH.CheckAnnouncementStatus)
			admin.GET("/newsletter/subscribers", adminContentH.ListSubscribers)

			admin.GET("/customers", adminCustomerH.ListCustomers)
			admin.GET("/customers/:id", adminCustomerH.GetCustomer)
			admin.PUT("/customers/:id/status", adminCustomerH.UpdateCustomerStatus)
			admin.DELETE("/customers/:id", adminCustomerH.DeleteCustomer)

			admin.GET("/notifications", adminNotificationH.ListNotifications)
			admin.GET("/notifications/unread-count", adminNotificationH.CountUnread)
			admin.POST("/notifications/read-all", adminNotificationH.MarkAllAsRead)
			admin.PUT("/notifications/:id/read", adminNotificationH.MarkAsRead)
			admin.DELETE("/notifications/:id", adminNotificationH.DeleteNotification)

			admin.POST("/deal-monitor", adminDealMonitorH.Start)
			admin.DELETE("/deal-monitor", adminDealMonitorH.Stop)
			admin.GET("/deal-monitor", adminDealMonitorH.Status)
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})

	return sched, dealMonitor
}
