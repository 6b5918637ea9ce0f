package service

import (
	"strings"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// PaymentService 支付服务（占位实现，不接网关）
type PaymentService struct {
	orderRepo    repository.OrderRepository
	paymentRepo  repository.PaymentRepository
	orderService *OrderService
}

// NewPaymentService 创建支付服务
func NewPaymentService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository, orderService *OrderService) *PaymentService {
	return &PaymentService{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		orderService: orderService,
	}
}

// ProcessPayment 占位支付：无条件置支付记录为 completed，并把订单推进到已发货。
// 订单不存在或不归属调用方时失败。
func (s *PaymentService) ProcessPayment(actorID uint, actorIsAdmin bool, orderID uint, paymentMethod string) (*models.Payment, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !actorIsAdmin && order.UserID != actorID {
		return nil, ErrForbidden
	}

	payment, err := s.paymentRepo.GetByOrderID(order.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if payment == nil {
		method := strings.TrimSpace(paymentMethod)
		if method == "" {
			method = order.PaymentMethod
		}
		payment = &models.Payment{
			OrderID:  order.ID,
			Provider: method,
			Status:   constants.PaymentStatusCompleted,
			Amount:   order.TotalAmount,
			PaidAt:   &now,
		}
		if err := s.paymentRepo.Create(payment); err != nil {
			return nil, err
		}
	} else if payment.Status != constants.PaymentStatusCompleted {
		if err := s.paymentRepo.UpdateStatus(payment.ID, constants.PaymentStatusCompleted, &now); err != nil {
			return nil, err
		}
		payment.Status = constants.PaymentStatusCompleted
		payment.PaidAt = &now
	}

	if _, err := s.orderService.MarkShippedAfterPayment(order.ID); err != nil {
		return nil, err
	}

	return s.paymentRepo.GetByID(payment.ID)
}

// GetPayment 获取支付记录（带订单）；归属用户或管理员可见
func (s *PaymentService) GetPayment(actorID uint, actorIsAdmin bool, paymentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if !actorIsAdmin && (payment.Order == nil || payment.Order.UserID != actorID) {
		return nil, ErrForbidden
	}
	return payment, nil
}
