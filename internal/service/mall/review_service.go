package mall

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

// ReviewService 评价服务
type ReviewService struct {
	reviewRepo  *repository.ReviewRepository
	productRepo *repository.ProductRepository
	orderRepo   *repository.OrderRepository
}

// NewReviewService 创建评价服务
func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	productRepo *repository.ProductRepository,
	orderRepo *repository.OrderRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	ProductID int64    `json:"product_id" binding:"required"`
	OrderID   *int64   `json:"order_id,omitempty"`
	Rating    int      `json:"rating" binding:"required"`
	Content   *string  `json:"content,omitempty" binding:"omitempty,max=1000"`
	Images    []string `json:"images,omitempty"`
}

// ReviewInfo 评价信息
type ReviewInfo struct {
	ID         int64     `json:"id"`
	ProductID  int64     `json:"product_id"`
	UserName   string    `json:"user_name,omitempty"`
	Rating     int       `json:"rating"`
	Content    string    `json:"content,omitempty"`
	Images     []string  `json:"images,omitempty"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

// ReviewListResponse 评价列表响应
type ReviewListResponse struct {
	List        []*ReviewInfo `json:"list"`
	Total       int64         `json:"total"`
	Rating      float64       `json:"rating"`
	ReviewCount int64         `json:"review_count"`
}

// CreateReview 创建评价
func (s *ReviewService) CreateReview(ctx context.Context, userID int64, req *CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.ErrRatingInvalid
	}

	if _, err := s.productRepo.GetByID(ctx, req.ProductID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	// 关联订单时校验归属并限制一单一评
	if req.OrderID != nil {
		order, err := s.orderRepo.GetByIDAndUserID(ctx, *req.OrderID, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, errors.ErrOrderNotFound
			}
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if order.PaymentStatus != models.PaymentStatusCompleted {
			return nil, errors.ErrOrderStatusError
		}

		exists, err := s.reviewRepo.ExistsByOrderAndProduct(ctx, *req.OrderID, req.ProductID, userID)
		if err != nil {
			return nil, errors.ErrDatabaseError.WithError(err)
		}
		if exists {
			return nil, errors.ErrReviewExists
		}
	}

	review := &models.Review{
		ProductID: req.ProductID,
		UserID:    userID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Content:   req.Content,
		Images:    models.StringList(req.Images),
		IsVisible: true,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	return review, nil
}

// GetProductReviews 获取商品可见评价（精选优先）
func (s *ReviewService) GetProductReviews(ctx context.Context, productID int64, page, pageSize int) (*ReviewListResponse, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}

	reviews, total, err := s.reviewRepo.ListVisibleByProductID(ctx, productID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	rating, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}

	list := make([]*ReviewInfo, len(reviews))
	for i, r := range reviews {
		list[i] = toReviewInfo(r)
	}

	return &ReviewListResponse{
		List:        list,
		Total:       total,
		Rating:      rating,
		ReviewCount: count,
	}, nil
}

// GetFeaturedReviews 获取精选评价
func (s *ReviewService) GetFeaturedReviews(ctx context.Context, limit int) ([]*ReviewInfo, error) {
	if limit <= 0 {
		limit = 6
	}
	reviews, err := s.reviewRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, errors.ErrDatabaseError.WithError(err)
	}
	list := make([]*ReviewInfo, len(reviews))
	for i, r := range reviews {
		list[i] = toReviewInfo(r)
	}
	return list, nil
}

// GetUserReviews 获取用户自己的评价
func (s *ReviewService) GetUserReviews(ctx context.Context, userID int64, page, pageSize int) ([]*models.Review, int64, error) {
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 10
	}
	reviews, total, err := s.reviewRepo.List(ctx, repository.ReviewListParams{
		Offset: (page - 1) * pageSize,
		Limit:  pageSize,
		UserID: userID,
	})
	if err != nil {
		return nil, 0, errors.ErrDatabaseError.WithError(err)
	}
	return reviews, total, nil
}

// DeleteReview 删除自己的评价
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return errors.ErrDatabaseError.WithError(err)
	}
	if review.UserID != userID {
		return errors.ErrReviewNotOwned
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return errors.ErrDatabaseError.WithError(err)
	}
	return nil
}

func toReviewInfo(r *models.Review) *ReviewInfo {
	info := &ReviewInfo{
		ID:         r.ID,
		ProductID:  r.ProductID,
		Rating:     r.Rating,
		Images:     r.Images,
		IsFeatured: r.IsFeatured,
		CreatedAt:  r.CreatedAt,
	}
	if r.Content != nil {
		info.Content = *r.Content
	}
	if r.User != nil {
		info.UserName = maskName(r.User.Name)
	}
	return info
}

// maskName 打码展示用户名
func maskName(name string) string {
	runes := []rune(name)
	if len(runes) <= 1 {
		return "**"
	}
	return string(runes[0]) + "**"
}
