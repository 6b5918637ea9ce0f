package public

import (
	"strconv"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetCart 获取当前用户购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	cart, err := h.CartService.GetCart(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, cartResponse(cart))
}

// CartAddItemRequest 加购请求
type CartAddItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AddCartItem 加入购物车；同商品重复加购时数量累加
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.AddItem(uid, req.ProductID, req.Quantity)
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, cartResponse(cart))
}

// CartUpdateItemRequest 修改购物车项请求
type CartUpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartItem 覆盖购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req CartUpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.UpdateItem(uid, uint(itemID), req.Quantity)
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, cartResponse(cart))
}

// RemoveCartItem 删除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	cart, err := h.CartService.RemoveItem(uid, uint(itemID))
	if err != nil {
		respondCartWriteError(c, err)
		return
	}
	response.Success(c, cartResponse(cart))
}

func cartResponse(cart *models.Cart) gin.H {
	if cart == nil {
		return gin.H{"items": []gin.H{}, "subtotal": "0"}
	}
	items := make([]gin.H, 0, len(cart.Items))
	subtotal := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		entry := gin.H{
			"id":         item.ID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
		}
		if item.Product != nil {
			entry["product"] = productResponse(item.Product)
			subtotal = subtotal.Add(item.Product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		items = append(items, entry)
	}
	return gin.H{
		"id":       cart.ID,
		"items":    items,
		"subtotal": subtotal.String(),
	}
}
