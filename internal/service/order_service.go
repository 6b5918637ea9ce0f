package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/queue"
	"github.com/shopease-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	addressRepo repository.AddressRepository
	paymentRepo repository.PaymentRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, addressRepo repository.AddressRepository, paymentRepo repository.PaymentRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		addressRepo: addressRepo,
		paymentRepo: paymentRepo,
		queueClient: queueClient,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	UserID        uint
	AddressID     uint
	PaymentMethod string
	Items         []CreateOrderItem
}

// CreateOrderItem 创建订单项输入。
// 单价始终取商品当前库内价格，调用方传入的价格一律忽略。
type CreateOrderItem struct {
	ProductID uint
	Quantity  int
}

// 订单状态流转表；不在表内的流转一律拒绝
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusConfirmed: {
		constants.OrderStatusPending:  true,
		constants.OrderStatusShipped:  true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusPending: {
		constants.OrderStatusShipped:  true,
		constants.OrderStatusCanceled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

// CreateOrder 创建订单：校验地址归属、按库内价格计价、
// 订单/订单项/支付记录在同一事务内落库。
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	if input.UserID == 0 || len(input.Items) == 0 || input.AddressID == 0 {
		return nil, ErrInvalidOrderItem
	}

	// 地址必须归属下单用户；不存在与越权统一按不存在处理
	address, err := s.addressRepo.GetByID(input.AddressID)
	if err != nil {
		return nil, err
	}
	if address == nil || address.UserID != input.UserID {
		return nil, ErrAddressNotFound
	}

	merged := mergeCreateOrderItems(input.Items)

	productIDs := make([]uint, 0, len(merged))
	for _, item := range merged {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, ErrInvalidOrderItem
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.ListByIDs(productIDs)
	if err != nil {
		return nil, err
	}
	productByID := make(map[uint]models.Product, len(products))
	for _, product := range products {
		productByID[product.ID] = product
	}

	total := decimal.Zero
	orderItems := make([]models.OrderItem, 0, len(merged))
	for _, item := range merged {
		product, ok := productByID[item.ProductID]
		if !ok {
			// 未匹配到商品直接失败，绝不按 0 计价
			return nil, ErrProductNotFound
		}
		lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			TotalPrice:  models.NewMoneyFromDecimal(lineTotal),
		})
		total = total.Add(lineTotal)
	}

	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = constants.PaymentMethodCOD
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:       generateOrderNo(),
		UserID:        input.UserID,
		AddressID:     address.ID,
		Status:        constants.OrderStatusConfirmed,
		PaymentMethod: paymentMethod,
		TotalAmount:   models.NewMoneyFromDecimal(total),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		paymentRepo := s.paymentRepo.WithTx(tx)

		if err := orderRepo.Create(order, orderItems); err != nil {
			return err
		}

		payment := &models.Payment{
			OrderID:  order.ID,
			Provider: paymentMethod,
			Status:   constants.PaymentStatusPaid,
			Amount:   order.TotalAmount,
			PaidAt:   &now,
		}
		return paymentRepo.Create(payment)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", input.UserID, "error", err)
		return nil, err
	}

	s.enqueueStatusEmail(order.ID, order.Status)

	created, err := s.orderRepo.GetByIDAndUser(order.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, ErrOrderCreateFailed
	}
	return created, nil
}

// GetUserOrders 用户订单列表（倒序，全量关联）
func (s *OrderService) GetUserOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// GetOrder 获取订单详情：归属用户或管理员可见
func (s *OrderService) GetOrder(actorID uint, actorIsAdmin bool, orderID uint) (*models.Order, error) {
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
	return order, nil
}

// UpdateOrderStatus 管理员更新订单状态；非法流转拒绝
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := strings.ToLower(strings.TrimSpace(targetStatus))
	current := strings.ToLower(strings.TrimSpace(order.Status))
	if target == "" || !allowedTransitions[current][target] {
		return nil, ErrOrderStatusInvalid
	}

	if err := s.orderRepo.UpdateStatus(order.ID, target, nil); err != nil {
		return nil, err
	}
	s.enqueueStatusEmail(order.ID, target)

	return s.orderRepo.GetByID(order.ID)
}

// MarkShippedAfterPayment 支付完成后把订单推进到已发货
func (s *OrderService) MarkShippedAfterPayment(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	current := strings.ToLower(strings.TrimSpace(order.Status))
	if current != constants.OrderStatusShipped {
		if !allowedTransitions[current][constants.OrderStatusShipped] {
			return nil, ErrOrderStatusInvalid
		}
		if err := s.orderRepo.UpdateStatus(order.ID, constants.OrderStatusShipped, nil); err != nil {
			return nil, err
		}
		s.enqueueStatusEmail(order.ID, constants.OrderStatusShipped)
	}
	return s.orderRepo.GetByID(order.ID)
}

func (s *OrderService) enqueueStatusEmail(orderID uint, status string) {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", orderID, "status", status, "error", err)
	}
}

// mergeCreateOrderItems 合并重复商品行，数量相加
func mergeCreateOrderItems(items []CreateOrderItem) []CreateOrderItem {
	merged := make([]CreateOrderItem, 0, len(items))
	index := make(map[uint]int, len(items))
	for _, item := range items {
		if pos, ok := index[item.ProductID]; ok {
			merged[pos].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("SE%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
