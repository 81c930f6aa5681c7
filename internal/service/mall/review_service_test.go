// Package mall 评价服务单元测试
package mall

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/errors"
	"github.com/chensiyuan/home-textile-mall-backend/internal/models"
	"github.com/chensiyuan/home-textile-mall-backend/internal/repository"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewOrderRepository(db),
	)
}

func createPaidOrder(t *testing.T, db *gorm.DB, userID int64) *models.Order {
	order := &models.Order{
		OrderNo:       "HT20260901TEST01",
		UserID:        userID,
		Status:        models.OrderStatusCompleted,
		PaymentStatus: models.PaymentStatusCompleted,
		TotalAmount:   299,
		ActualAmount:  299,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestReviewService_CreateReview(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)
	ctx := context.Background()

	product := createMallProduct(t, db, "四件套·简约灰", 299, nil)
	content := "面料舒服，洗后不缩水"

	review, err := service.CreateReview(ctx, 1, &CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
		Content:   &content,
	})
	require.NoError(t, err)
	assert.True(t, review.IsVisible)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_CreateReview_RatingInvalid(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)

	product := createMallProduct(t, db, "四件套", 299, nil)

	for _, rating := range []int{0, 6, -1} {
		_, err := service.CreateReview(context.Background(), 1, &CreateReviewRequest{
			ProductID: product.ID,
			Rating:    rating,
		})
		assert.Equal(t, errors.ErrRatingInvalid, err)
	}
}

func TestReviewService_CreateReview_ProductNotFound(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)

	_, err := service.CreateReview(context.Background(), 1, &CreateReviewRequest{
		ProductID: 9999,
		Rating:    5,
	})
	assert.Equal(t, errors.ErrProductNotFound, err)
}

func TestReviewService_CreateReview_DuplicatePerOrder(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)
	ctx := context.Background()

	product := createMallProduct(t, db, "四件套", 299, nil)
	order := createPaidOrder(t, db, 1)

	_, err := service.CreateReview(ctx, 1, &CreateReviewRequest{
		ProductID: product.ID,
		OrderID:   &order.ID,
		Rating:    5,
	})
	require.NoError(t, err)

	_, err = service.CreateReview(ctx, 1, &CreateReviewRequest{
		ProductID: product.ID,
		OrderID:   &order.ID,
		Rating:    4,
	})
	assert.Equal(t, errors.ErrReviewExists, err)
}

func TestReviewService_CreateReview_UnpaidOrder(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)
	ctx := context.Background()

	product := createMallProduct(t, db, "四件套", 299, nil)
	order := &models.Order{
		OrderNo:       "HT20260901TEST02",
		UserID:        1,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalAmount:   299,
		ActualAmount:  299,
	}
	require.NoError(t, db.Create(order).Error)

	_, err := service.CreateReview(ctx, 1, &CreateReviewRequest{
		ProductID: product.ID,
		OrderID:   &order.ID,
		Rating:    5,
	})
	assert.Equal(t, errors.ErrOrderStatusError, err)
}

func TestReviewService_CreateReview_OtherUsersOrder(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)

	product := createMallProduct(t, db, "四件套", 299, nil)
	order := createPaidOrder(t, db, 2)

	_, err := service.CreateReview(context.Background(), 1, &CreateReviewRequest{
		ProductID: product.ID,
		OrderID:   &order.ID,
		Rating:    5,
	})
	assert.Equal(t, errors.ErrOrderNotFound, err)
}

func TestReviewService_GetProductReviews(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)
	ctx := context.Background()

	product := createMallProduct(t, db, "四件套", 299, nil)

	for i, rating := range []int{5, 4, 3} {
		_, err := service.CreateReview(ctx, int64(i+1), &CreateReviewRequest{
			ProductID: product.ID,
			Rating:    rating,
		})
		require.NoError(t, err)
	}
	// 隐藏一条
	require.NoError(t, db.Model(&models.Review{}).Where("rating = ?", 3).Update("is_visible", false).Error)

	resp, err := service.GetProductReviews(ctx, product.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Total)
	assert.Equal(t, int64(2), resp.ReviewCount)
	assert.InDelta(t, 4.5, resp.Rating, 0.01)
}

func TestReviewService_DeleteReview_Ownership(t *testing.T) {
	db := setupMallTestDB(t)
	service := newReviewService(db)
	ctx := context.Background()

	product := createMallProduct(t, db, "四件套", 299, nil)
	review, err := service.CreateReview(ctx, 1, &CreateReviewRequest{
		ProductID: product.ID,
		Rating:    5,
	})
	require.NoError(t, err)

	err = service.DeleteReview(ctx, review.ID, 2)
	assert.Equal(t, errors.ErrReviewNotOwned, err)

	err = service.DeleteReview(ctx, review.ID, 1)
	require.NoError(t, err)

	err = service.DeleteReview(ctx, review.ID, 1)
	assert.Equal(t, errors.ErrReviewNotFound, err)
}

func TestMaskName(t *testing.T) {
	assert.Equal(t, "张**", maskName("张三"))
	assert.Equal(t, "**", maskName("王"))
	assert.Equal(t, "**", maskName(""))
}
