package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newPaymentServiceForTest(db *gorm.DB) (*PaymentService, *OrderService) {
	orderSvc := newOrderServiceForTest(db)
	paymentSvc := NewPaymentService(
		repository.NewOrderRepository(db),
		repository.NewPaymentRepository(db),
		orderSvc,
	)
	return paymentSvc, orderSvc
}

func TestProcessPaymentCompletesAndShipsOrder(t *testing.T) {
	db := setupServiceDB(t)
	paymentSvc, orderSvc := newPaymentServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	order, err := orderSvc.CreateOrder(CreateOrderInput{
		UserID:    user.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	payment, err := paymentSvc.ProcessPayment(user.ID, false, order.ID, constants.PaymentMethodCard)
	if err != nil {
		t.Fatalf("process payment failed: %v", err)
	}
	if payment.Status != constants.PaymentStatusCompleted {
		t.Fatalf("payment status want completed got %s", payment.Status)
	}
	if payment.PaidAt == nil {
		t.Fatalf("expected paid_at set")
	}
	mustMoneyEqual(t, payment.Amount, "21.00")

	shipped, err := orderSvc.GetOrder(user.ID, false, order.ID)
	if err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if shipped.Status != constants.OrderStatusShipped {
		t.Fatalf("order status want shipped got %s", shipped.Status)
	}

	// 重复支付是幂等的
	again, err := paymentSvc.ProcessPayment(user.ID, false, order.ID, "")
	if err != nil {
		t.Fatalf("repeat payment failed: %v", err)
	}
	if again.ID != payment.ID || again.Status != constants.PaymentStatusCompleted {
		t.Fatalf("repeat payment want same completed record, got id=%d status=%s", again.ID, again.Status)
	}
}

func TestProcessPaymentRejectsForeignOrder(t *testing.T) {
	db := setupServiceDB(t)
	paymentSvc, orderSvc := newPaymentServiceForTest(db)

	owner := seedTestUser(t, db, "owner@example.com")
	stranger := seedTestUser(t, db, "stranger@example.com")
	address := seedTestAddress(t, db, owner.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	order, err := orderSvc.CreateOrder(CreateOrderInput{
		UserID:    owner.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := paymentSvc.ProcessPayment(stranger.ID, false, order.ID, ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden got %v", err)
	}
	if _, err := paymentSvc.ProcessPayment(owner.ID, false, order.ID+99, ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
}

func TestGetPaymentVisibility(t *testing.T) {
	db := setupServiceDB(t)
	paymentSvc, orderSvc := newPaymentServiceForTest(db)

	owner := seedTestUser(t, db, "owner@example.com")
	stranger := seedTestUser(t, db, "stranger@example.com")
	address := seedTestAddress(t, db, owner.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	order, err := orderSvc.CreateOrder(CreateOrderInput{
		UserID:    owner.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	if order.Payment == nil {
		t.Fatalf("expected payment created with order")
	}

	if _, err := paymentSvc.GetPayment(owner.ID, false, order.Payment.ID); err != nil {
		t.Fatalf("owner get payment failed: %v", err)
	}
	if _, err := paymentSvc.GetPayment(stranger.ID, false, order.Payment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger want ErrForbidden got %v", err)
	}
	if _, err := paymentSvc.GetPayment(0, true, order.Payment.ID); err != nil {
		t.Fatalf("admin get payment failed: %v", err)
	}
	if _, err := paymentSvc.GetPayment(owner.ID, false, order.Payment.ID+99); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("want ErrPaymentNotFound got %v", err)
	}
}
