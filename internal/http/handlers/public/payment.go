package public

import (
	"strconv"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"

	"github.com/gin-gonic/gin"
)

// ProcessPaymentRequest 支付请求
type ProcessPaymentRequest struct {
	OrderID       uint   `json:"order_id" binding:"required"`
	PaymentMethod string `json:"payment_method"`
}

// ProcessPayment 占位支付：订单归属校验通过后直接标记支付完成并发货
func (h *Handler) ProcessPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payment, err := h.PaymentService.ProcessPayment(uid, isAdminRole(c), req.OrderID, req.PaymentMethod)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, paymentResponse(payment))
}

// GetPayment 支付记录详情（归属用户或管理员）
func (h *Handler) GetPayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	paymentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || paymentID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	payment, err := h.PaymentService.GetPayment(uid, isAdminRole(c), uint(paymentID))
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, paymentResponse(payment))
}

func paymentResponse(payment *models.Payment) gin.H {
	if payment == nil {
		return gin.H{}
	}
	return gin.H{
		"id":         payment.ID,
		"order_id":   payment.OrderID,
		"provider":   payment.Provider,
		"status":     payment.Status,
		"amount":     payment.Amount,
		"paid_at":    payment.PaidAt,
		"created_at": payment.CreatedAt,
	}
}
