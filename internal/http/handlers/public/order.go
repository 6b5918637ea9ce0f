package public

import (
	"errors"
	"strconv"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderItemRequest 订单项请求；单价以库内商品价格为准，请求中不收价格
type OrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	AddressID     uint               `json:"address_id" binding:"required"`
	PaymentMethod string             `json:"payment_method"`
	Items         []OrderItemRequest `json:"items" binding:"required"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	items := make([]service.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.CreateOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		UserID:        uid,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		Items:         items,
	})
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	// 下单成功后清空购物车；失败不影响订单结果
	if err := h.CartService.ClearCart(uid); err != nil {
		requestLog(c).Warnw("cart_clear_after_order_failed", "user_id", uid, "order_id", order.ID, "error", err)
	}

	response.Success(c, orderResponse(order))
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.GetUserOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	result := make([]gin.H, 0, len(orders))
	for i := range orders {
		result = append(result, orderResponse(&orders[i]))
	}
	response.SuccessWithPage(c, result, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetMyOrder 订单详情（归属用户或管理员）
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	order, err := h.OrderService.GetOrder(uid, isAdminRole(c), uint(orderID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
		case errors.Is(err, service.ErrForbidden):
			respondError(c, response.CodeForbidden, "error.forbidden", nil)
		default:
			respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		}
		return
	}
	response.Success(c, orderResponse(order))
}

func orderResponse(order *models.Order) gin.H {
	if order == nil {
		return gin.H{}
	}
	items := make([]gin.H, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, gin.H{
			"id":           item.ID,
			"product_id":   item.ProductID,
			"product_name": item.ProductName,
			"unit_price":   item.UnitPrice,
			"quantity":     item.Quantity,
			"total_price":  item.TotalPrice,
		})
	}
	result := gin.H{
		"id":             order.ID,
		"order_no":       order.OrderNo,
		"user_id":        order.UserID,
		"address_id":     order.AddressID,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"total_amount":   order.TotalAmount,
		"items":          items,
		"created_at":     order.CreatedAt,
	}
	if order.Address != nil {
		result["address"] = addressResponse(order.Address)
	}
	if order.Payment != nil {
		result["payment"] = paymentResponse(order.Payment)
	}
	return result
}
