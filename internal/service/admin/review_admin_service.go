package admin

import (
	"context"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// ReviewAdminService 评价审核服务
type ReviewAdminService struct {
	reviewRepo *repository.ReviewRepository
}

// NewReviewAdminService 创建评价审核服务
func NewReviewAdminService(reviewRepo *repository.ReviewRepository) *ReviewAdminService {
	return &ReviewAdminService{reviewRepo: reviewRepo}
}

// ReviewAdminListRequest 评价列表请求（管理端）
type ReviewAdminListRequest struct {
	Page      int   `form:"page" binding:"omitempty,min=1"`
	PageSize  int   `form:"page_size" binding:"omitempty,min=1,max=100"`
	ProductID int64 `form:"product_id"`
	UserID    int64 `form:"user_id"`
	Rating    int   `form:"rating" binding:"omitempty,min=1,max=5"`
	IsVisible *bool `form:"is_visible"`
}

// ListReviews 评价列表（管理端，含隐藏评价）
func (s *ReviewAdminService) ListReviews(ctx context.Context, req *ReviewAdminListRequest) ([]*models.Review, int64, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	reviews, total, err := s.reviewRepo.List(ctx, repository.ReviewListParams{
		Offset:    (req.Page - 1) * req.PageSize,
		Limit:     req.PageSize,
		ProductID: req.ProductID,
		UserID:    req.UserID,
		Rating:    req.Rating,
		IsVisible: req.IsVisible,
	})
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return reviews, total, nil
}

// SetVisible 显示/隐藏评价
func (s *ReviewAdminService) SetVisible(ctx context.Context, id int64, visible bool) error {
	if err := s.reviewRepo.SetVisible(ctx, id, visible); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// SetFeatured 设置/取消精选，隐藏中的评价不能设为精选
func (s *ReviewAdminService) SetFeatured(ctx context.Context, id int64, featured bool) error {
	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if featured && !review.IsVisible {
		return errors.ErrOperationFailed.WithMessage("隐藏中的评价不能设为精选")
	}

	if err := s.reviewRepo.SetFeatured(ctx, id, featured); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// SetAdminNote 设置管理备注
func (s *ReviewAdminService) SetAdminNote(ctx context.Context, id int64, note string) error {
	if _, err := s.reviewRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.reviewRepo.UpdateFields(ctx, id, map[string]interface{}{"admin_note": note}); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// DeleteReview 删除评价
func (s *ReviewAdminService) DeleteReview(ctx context.Context, id int64) error {
	if _, err := s.reviewRepo.GetByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}
