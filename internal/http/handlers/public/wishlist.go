package public

import (
	"errors"
	"strconv"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListWishlist 当前用户心愿单
func (h *Handler) ListWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	entries, err := h.WishlistService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wishlist_fetch_failed", err)
		return
	}
	result := make([]gin.H, 0, len(entries))
	for i := range entries {
		result = append(result, wishlistEntryResponse(&entries[i]))
	}
	response.Success(c, result)
}

// WishlistAddRequest 收藏请求
type WishlistAddRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// AddWishlistEntry 收藏商品；重复收藏拒绝
func (h *Handler) AddWishlistEntry(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req WishlistAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	entry, err := h.WishlistService.Add(uid, req.ProductID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		case errors.Is(err, service.ErrWishlistExists):
			respondError(c, response.CodeBadRequest, "error.wishlist_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.wishlist_save_failed", err)
		}
		return
	}
	response.Success(c, wishlistEntryResponse(entry))
}

// RemoveWishlistEntry 移除收藏
func (h *Handler) RemoveWishlistEntry(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || entryID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.WishlistService.Remove(uid, uint(entryID)); err != nil {
		switch {
		case errors.Is(err, service.ErrWishlistNotFound):
			respondError(c, response.CodeNotFound, "error.wishlist_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.wishlist_save_failed", err)
		}
		return
	}
	response.Success(c, gin.H{"removed": true})
}

func wishlistEntryResponse(entry *models.WishlistEntry) gin.H {
	if entry == nil {
		return gin.H{}
	}
	result := gin.H{
		"id":         entry.ID,
		"product_id": entry.ProductID,
		"created_at": entry.CreatedAt,
	}
	if entry.Product != nil {
		result["product"] = productResponse(entry.Product)
	}
	return result
}
