// Package marketing 提供营销相关服务
package marketing

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/logger"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/qrcode"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/utils"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// 优惠券码长度
const couponCodeLength = 10

// CouponService 优惠券服务
type CouponService struct {
	couponRepo *repository.CouponRepository
	qrGen      *qrcode.Generator
	shareBase  string
}

// NewCouponService 创建优惠券服务，shareBase 为分享链接前缀
func NewCouponService(couponRepo *repository.CouponRepository, shareBase string) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		qrGen:      qrcode.NewGenerator(qrcode.WithSize(300), qrcode.WithRecoveryLevel(qrcode.High)),
		shareBase:  shareBase,
	}
}

// CreateCouponRequest 创建优惠券请求
type CreateCouponRequest struct {
	Code         string   `json:"code,omitempty" binding:"omitempty,max=50"`
	Name         string   `json:"name" binding:"required,max=100"`
	Type         string   `json:"type" binding:"required,oneof=fixed percent"`
	Value        float64  `json:"value" binding:"required,gt=0"`
	MinAmount    float64  `json:"min_amount" binding:"omitempty,min=0"`
	MaxDiscount  *float64 `json:"max_discount,omitempty"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
	PerUserLimit int      `json:"per_user_limit" binding:"omitempty,min=0"`
	Description  *string  `json:"description,omitempty"`
}

// UpdateCouponRequest 更新优惠券请求
type UpdateCouponRequest struct {
	Name         *string  `json:"name,omitempty" binding:"omitempty,max=100"`
	Value        *float64 `json:"value,omitempty" binding:"omitempty,gt=0"`
	MinAmount    *float64 `json:"min_amount,omitempty" binding:"omitempty,min=0"`
	MaxDiscount  *float64 `json:"max_discount,omitempty"`
	StartTime    *string  `json:"start_time,omitempty"`
	EndTime      *string  `json:"end_time,omitempty"`
	PerUserLimit *int     `json:"per_user_limit,omitempty" binding:"omitempty,min=0"`
	Description  *string  `json:"description,omitempty"`
}

// CouponListRequest 优惠券列表请求
type CouponListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Keyword  string `form:"keyword"`
	IsActive *bool  `form:"is_active"`
	Type     string `form:"type"`
}

// CouponListResponse 优惠券列表响应
type CouponListResponse struct {
	List     []*models.Coupon `json:"list"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// CreateCoupon 创建优惠券，未指定券码时自动生成
func (s *CouponService) CreateCoupon(ctx context.Context, req *CreateCouponRequest) (*models.Coupon, error) {
	startTime, endTime, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	code := req.Code
	if code == "" {
		code, err = s.generateUniqueCode(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.couponRepo.ExistsByCode(ctx, code)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrCouponCodeExists
		}
	}

	perUserLimit := req.PerUserLimit
	if perUserLimit == 0 {
		perUserLimit = 1
	}

	coupon := &models.Coupon{
		Code:         code,
		Name:         req.Name,
		Type:         req.Type,
		Value:        req.Value,
		MinAmount:    req.MinAmount,
		MaxDiscount:  req.MaxDiscount,
		StartTime:    startTime,
		EndTime:      endTime,
		IsActive:     true,
		PerUserLimit: perUserLimit,
		Description:  req.Description,
	}
	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	logger.Info("优惠券创建成功", logger.Module("marketing"), logger.CouponID(coupon.ID))
	return coupon, nil
}

// generateUniqueCode 生成未占用的券码
func (s *CouponService) generateUniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		code := utils.GenerateCouponCode(couponCodeLength)
		exists, err := s.couponRepo.ExistsByCode(ctx, code)
		if err != nil {
			return "", errors.ErrDatabaseError.WithError(err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.ErrOperationFailed.WithMessage("券码生成失败")
}

// GetCoupon 获取优惠券详情
func (s *CouponService) GetCoupon(ctx context.Context, id int64) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCouponNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return coupon, nil
}

// ListCoupons 获取优惠券列表（管理端）
func (s *CouponService) ListCoupons(ctx context.Context, req *CouponListRequest) (*CouponListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	coupons, total, err := s.couponRepo.List(ctx, repository.CouponListParams{
		Offset:   (req.Page - 1) * req.PageSize,
		Limit:    req.PageSize,
		Keyword:  req.Keyword,
		IsActive: req.IsActive,
		Type:     req.Type,
	})
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	return &CouponListResponse{
		List:     coupons,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// ListAvailableCoupons 获取当前可用的优惠券（用户端）
func (s *CouponService) ListAvailableCoupons(ctx context.Context) ([]*models.Coupon, error) {
	coupons, err := s.couponRepo.ListAvailable(ctx, time.Now())
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return coupons, nil
}

// UpdateCoupon 更新优惠券
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *UpdateCouponRequest) (*models.Coupon, error) {
	coupon, err := s.GetCoupon(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Value != nil {
		fields["value"] = *req.Value
	}
	if req.MinAmount != nil {
		fields["min_amount"] = *req.MinAmount
	}
	if req.MaxDiscount != nil {
		fields["max_discount"] = *req.MaxDiscount
	}
	if req.PerUserLimit != nil {
		fields["per_user_limit"] = *req.PerUserLimit
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}

	startTime := coupon.StartTime
	endTime := coupon.EndTime
	if req.StartTime != nil {
		startTime, err = parseTime(*req.StartTime)
		if err != nil {
			return nil, err
		}
		fields["start_time"] = startTime
	}
	if req.EndTime != nil {
		endTime, err = parseTime(*req.EndTime)
		if err != nil {
			return nil, err
		}
		fields["end_time"] = endTime
	}
	if !endTime.After(startTime) {
		return nil, errors.ErrDateRangeInvalid
	}

	if len(fields) == 0 {
		return coupon, nil
	}
	if err := s.couponRepo.UpdateFields(ctx, id, fields); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return s.GetCoupon(ctx, id)
}

// ToggleCoupon 启用/停用优惠券
func (s *CouponService) ToggleCoupon(ctx context.Context, id int64, active bool) error {
	if active {
		coupon, err := s.GetCoupon(ctx, id)
		if err != nil {
			return err
		}
		// 已过期的券不允许重新启用
		if !time.Now().Before(coupon.EndTime) {
			return errors.ErrCouponExpired
		}
	}

	if err := s.couponRepo.SetActive(ctx, id, active); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrCouponNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// DeleteCoupon 删除优惠券
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	if _, err := s.GetCoupon(ctx, id); err != nil {
		return err
	}
	if err := s.couponRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// GenerateShareQRCode 生成优惠券分享二维码（Data URL）
func (s *CouponService) GenerateShareQRCode(ctx context.Context, id int64) (string, error) {
	coupon, err := s.GetCoupon(ctx, id)
	if err != nil {
		return "", err
	}

	dataURL, err := s.qrGen.GenerateDataURL(s.shareBase + "?code=" + coupon.Code)
	if err != nil {
		return "", errors.ErrInternalError.WithError(err)
	}
	return dataURL, nil
}

// ListUsages 获取优惠券使用记录
func (s *CouponService) ListUsages(ctx context.Context, couponID int64, page, pageSize int) ([]*models.CouponUsage, int64, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	usages, total, err := s.couponRepo.ListUsages(ctx, couponID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return usages, total, nil
}

// parseTimeRange 解析并校验时间范围
func parseTimeRange(start, end string) (time.Time, time.Time, error) {
	startTime, err := parseTime(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endTime, err := parseTime(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !endTime.After(startTime) {
		return time.Time{}, time.Time{}, errors.ErrDateRangeInvalid
	}
	return startTime, endTime, nil
}

// parseTime 解析时间，兼容日期与日期时间两种格式
func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ErrInvalidParams.WithMessage("时间格式无效")
}
