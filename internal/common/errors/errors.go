// Package errors 定义业务错误码和错误处理
package errors

import (
	"fmt"
)

// AppError 应用错误
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 实现 errors.Unwrap
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的应用错误
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装错误
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithMessage 修改错误消息
func (e *AppError) WithMessage(message string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// WithError 添加原始错误
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}

// 通用错误码 (1000-1999)
var (
	ErrUnknown         = New(1000, "未知错误")
	ErrInvalidParams   = New(1001, "参数错误")
	ErrNotFound        = New(1002, "资源不存在")
	ErrAlreadyExists   = New(1003, "资源已存在")
	ErrDatabaseError   = New(1004, "数据库错误")
	ErrCacheError      = New(1005, "缓存错误")
	ErrInternalError   = New(1006, "内部错误")
	ErrExternalService = New(1007, "外部服务错误")
	ErrRateLimitExceed = New(1008, "请求过于频繁")
	ErrOperationFailed = New(1009, "操作失败")
)

// 认证错误码 (2000-2999)
var (
	ErrUnauthorized     = New(2000, "未登录")
	ErrTokenExpired     = New(2001, "登录已过期")
	ErrTokenInvalid     = New(2002, "无效的令牌")
	ErrTokenRefreshFail = New(2003, "刷新令牌失败")
	ErrPermissionDenied = New(2004, "权限不足")
	ErrAccountDisabled  = New(2005, "账号已禁用")
	ErrPasswordError    = New(2006, "密码错误")
)

// 用户与地址错误码 (3000-3999)
var (
	ErrUserNotFound      = New(3000, "用户不存在")
	ErrUserExists        = New(3001, "用户已存在")
	ErrEmailExists       = New(3002, "邮箱已被注册")
	ErrEmailInvalid      = New(3003, "无效的邮箱")
	ErrAddressNotFound   = New(3004, "地址不存在")
	ErrAddressLimitExceed = New(3005, "地址数量已达上限")
)

// 商品与特惠错误码 (4000-4999)
var (
	ErrProductNotFound   = New(4000, "商品不存在")
	ErrProductOffShelf   = New(4001, "商品已下架")
	ErrCategoryNotFound  = New(4002, "分类不存在")
	ErrSizeNotFound      = New(4003, "尺码不存在")
	ErrStockInsufficient = New(4004, "库存不足")
	ErrDealWindowInvalid = New(4005, "特惠时间窗口无效")
	ErrDealPriceInvalid  = New(4006, "特惠价格无效")
	ErrMonitorRunning    = New(4007, "特惠监控已在运行")
	ErrMonitorNotRunning = New(4008, "特惠监控未运行")
	ErrMonitorStartFail  = New(4009, "特惠监控启动失败")
)

// 订单错误码 (5000-5999)
var (
	ErrOrderNotFound     = New(5000, "订单不存在")
	ErrOrderStatusError  = New(5001, "订单状态异常")
	ErrOrderExpired      = New(5002, "订单已过期")
	ErrOrderCancelled    = New(5003, "订单已取消")
	ErrOrderPaid         = New(5004, "订单已支付")
	ErrOrderCannotCancel = New(5005, "订单无法取消")
	ErrOrderEmpty        = New(5006, "订单商品为空")
)

// 评价错误码 (6000-6999)
var (
	ErrReviewNotFound  = New(6000, "评价不存在")
	ErrReviewExists    = New(6001, "已评价过该商品")
	ErrRatingInvalid   = New(6002, "评分超出范围")
	ErrReviewNotOwned  = New(6003, "无权操作该评价")
)

// 优惠券错误码 (7000-7999)
var (
	ErrCouponNotFound      = New(7000, "优惠券不存在")
	ErrCouponExpired       = New(7001, "优惠券已过期")
	ErrCouponInactive      = New(7002, "优惠券未启用")
	ErrCouponUsed          = New(7003, "优惠券已使用")
	ErrCouponNotApplicable = New(7004, "优惠券不适用")
	ErrCouponLimitExceed   = New(7005, "优惠券使用次数已达上限")
	ErrCouponCodeExists    = New(7006, "优惠券码已存在")
	ErrCouponNotStarted    = New(7007, "优惠券未到使用时间")
)

// 公告与订阅错误码 (8000-8999)
var (
	ErrAnnouncementNotFound = New(8000, "公告不存在")
	ErrAnnouncementExpired  = New(8001, "公告已过期，无法激活")
	ErrDateRangeInvalid     = New(8002, "日期范围无效")
	ErrAlreadySubscribed    = New(8003, "邮箱已订阅")
	ErrNotSubscribed        = New(8004, "邮箱未订阅")
)

// 统计与通知错误码 (9000-9999)
var (
	ErrNotificationNotFound = New(9000, "通知不存在")
	ErrVisitRecordFailed    = New(9001, "访问记录失败")
	ErrVisitorIDMissing     = New(9002, "缺少访客标识")
)

// IsAppError 判断是否为应用错误
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError 获取应用错误
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnknown.WithError(err)
}
