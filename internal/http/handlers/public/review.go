package public

import (
	"errors"
	"strconv"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProductReviews 商品评价列表（公开）
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	reviews, err := h.ReviewService.List(uint(productID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.review_fetch_failed", err)
		}
		return
	}
	result := make([]gin.H, 0, len(reviews))
	for i := range reviews {
		result = append(result, reviewResponse(&reviews[i]))
	}
	response.Success(c, result)
}

// ReviewAddRequest 新增评价请求
type ReviewAddRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// AddProductReview 新增评价并重算商品均分
func (h *Handler) AddProductReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req ReviewAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	review, err := h.ReviewService.Add(uid, uint(productID), req.Rating, req.Comment)
	if err != nil {
		respondReviewWriteError(c, err)
		return
	}
	response.Success(c, reviewResponse(review))
}

// DeleteReview 删除评价（作者或管理员）
func (h *Handler) DeleteReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	reviewID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || reviewID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.ReviewService.Delete(uid, isAdminRole(c), uint(reviewID)); err != nil {
		respondReviewWriteError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func reviewResponse(review *models.Review) gin.H {
	if review == nil {
		return gin.H{}
	}
	result := gin.H{
		"id":         review.ID,
		"product_id": review.ProductID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	}
	if review.User != nil {
		result["user"] = gin.H{
			"id":   review.User.ID,
			"name": review.User.Name,
		}
	}
	return result
}
