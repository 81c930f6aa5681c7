package mall

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chensiyuan/home-textile-mall-backend/internal/common/handler"
	"github.com/chensiyuan/home-textile-mall-backend/internal/common/response"
	mallService "github.com/chensiyuan/home-textile-mall-backend/internal/service/mall"
)

// ReviewHandler 评价处理器
type ReviewHandler struct {
	reviewService *mallService.ReviewService
}

// NewReviewHandler 创建评价处理器
func NewReviewHandler(reviewSvc *mallService.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewSvc}
}

// CreateReview 创建评价
// @Summary 创建评价
// @Tags 评价
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body mall.CreateReviewRequest true "请求参数"
// @Success 200 {object} response.Response{data=models.Review}
// @Router /api/v1/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	var req mallService.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "参数错误")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), userID, &req)
	handler.MustSucceed(c, err, review)
}

// GetProductReviews 获取商品评价列表
// @Summary 获取商品评价列表
// @Tags 评价
// @Produce json
// @Param id path int true "商品ID"
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response{data=mall.ReviewListResponse}
// @Router /api/v1/products/{id}/reviews [get]
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, ok := handler.ParseID(c, "商品")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	result, err := h.reviewService.GetProductReviews(c.Request.Context(), productID, page, pageSize)
	handler.MustSucceed(c, err, result)
}

// GetFeaturedReviews 获取精选评价
// @Summary 获取精选评价
// @Tags 评价
// @Produce json
// @Param limit query int false "数量上限"
// @Success 200 {object} response.Response{data=[]mall.ReviewInfo}
// @Router /api/v1/reviews/featured [get]
func (h *ReviewHandler) GetFeaturedReviews(c *gin.Context) {
	limit := parseLimit(c, 6)
	reviews, err := h.reviewService.GetFeaturedReviews(c.Request.Context(), limit)
	handler.MustSucceed(c, err, reviews)
}

// GetUserReviews 获取我的评价列表
// @Summary 获取我的评价列表
// @Tags 评价
// @Produce json
// @Security Bearer
// @Param page query int false "页码"
// @Param page_size query int false "每页数量"
// @Success 200 {object} response.Response
// @Router /api/v1/user/reviews [get]
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	reviews, total, err := h.reviewService.GetUserReviews(c.Request.Context(), userID, page, pageSize)
	handler.MustSucceedPage(c, err, reviews, total, page, pageSize)
}

// DeleteReview 删除我的评价
// @Summary 删除我的评价
// @Tags 评价
// @Produce json
// @Security Bearer
// @Param id path int true "评价ID"
// @Success 200 {object} response.Response
// @Router /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := handler.RequireUserID(c)
	if !ok {
		return
	}
	reviewID, ok := handler.ParseID(c, "评价")
	if !ok {
		return
	}

	err := h.reviewService.DeleteReview(c.Request.Context(), reviewID, userID)
	handler.MustSucceed(c, err, nil)
}
