package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewAddressRepository(db),
		repository.NewPaymentRepository(db),
		nil,
	)
}

func TestCreateOrderMergesItemsAndPricesFromCatalog(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	earbuds := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)
	cable := seedTestProduct(t, db, category.ID, "Cable", "2.25", 100)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:    user.ID,
		AddressID: address.ID,
		Items: []CreateOrderItem{
			{ProductID: earbuds.ID, Quantity: 1},
			{ProductID: cable.ID, Quantity: 2},
			{ProductID: earbuds.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if order.Status != constants.OrderStatusConfirmed {
		t.Fatalf("status want confirmed got %s", order.Status)
	}
	if order.OrderNo == "" {
		t.Fatalf("expected non-empty order no")
	}
	if order.PaymentMethod != constants.PaymentMethodCOD {
		t.Fatalf("payment method want COD got %s", order.PaymentMethod)
	}
	// 重复商品行应合并：两种商品、耳机数量 3
	if len(order.Items) != 2 {
		t.Fatalf("items want 2 got %d", len(order.Items))
	}
	for _, item := range order.Items {
		if item.ProductID == earbuds.ID {
			if item.Quantity != 3 {
				t.Fatalf("merged quantity want 3 got %d", item.Quantity)
			}
			mustMoneyEqual(t, item.UnitPrice, "10.50")
			mustMoneyEqual(t, item.TotalPrice, "31.50")
		}
	}
	mustMoneyEqual(t, order.TotalAmount, "36.00")

	if order.Payment == nil {
		t.Fatalf("expected payment record created with order")
	}
	if order.Payment.Status != constants.PaymentStatusPaid {
		t.Fatalf("payment status want paid got %s", order.Payment.Status)
	}
	mustMoneyEqual(t, order.Payment.Amount, "36.00")
}

func TestCreateOrderRejectsForeignAddress(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	buyer := seedTestUser(t, db, "buyer@example.com")
	other := seedTestUser(t, db, "other@example.com")
	foreignAddress := seedTestAddress(t, db, other.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID:    buyer.ID,
		AddressID: foreignAddress.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("want ErrAddressNotFound got %v", err)
	}
}

func TestCreateOrderFailsOnUnknownProduct(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	_, err := svc.CreateOrder(CreateOrderInput{
		UserID:    user.ID,
		AddressID: address.ID,
		Items: []CreateOrderItem{
			{ProductID: product.ID, Quantity: 1},
			{ProductID: product.ID + 1000, Quantity: 1},
		},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}

	// 失败的下单不应留下半截订单
	var count int64
	if err := db.Table("orders").Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("orders want 0 got %d", count)
	}
}

func TestCreateOrderValidatesInput(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	cases := []CreateOrderInput{
		{UserID: user.ID, AddressID: address.ID, Items: nil},
		{UserID: user.ID, AddressID: 0, Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 1}}},
		{UserID: user.ID, AddressID: address.ID, Items: []CreateOrderItem{{ProductID: product.ID, Quantity: 0}}},
		{UserID: user.ID, AddressID: address.ID, Items: []CreateOrderItem{{ProductID: 0, Quantity: 1}}},
	}
	for i, input := range cases {
		if _, err := svc.CreateOrder(input); !errors.Is(err, ErrInvalidOrderItem) {
			t.Fatalf("case %d want ErrInvalidOrderItem got %v", i, err)
		}
	}
}

func TestUpdateOrderStatusTransitionTable(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:    user.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	// confirmed 不能直接跳到 delivered
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("confirmed->delivered want ErrOrderStatusInvalid got %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, "unknown"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("unknown status want ErrOrderStatusInvalid got %v", err)
	}

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusPending)
	if err != nil {
		t.Fatalf("confirmed->pending failed: %v", err)
	}
	if updated.Status != constants.OrderStatusPending {
		t.Fatalf("status want pending got %s", updated.Status)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("pending->delivered want ErrOrderStatusInvalid got %v", err)
	}

	updated, err = svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("pending->shipped failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status want shipped got %s", updated.Status)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("shipped->canceled want ErrOrderStatusInvalid got %v", err)
	}

	updated, err = svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("shipped->delivered failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered {
		t.Fatalf("status want delivered got %s", updated.Status)
	}

	// delivered 是终态
	for _, target := range []string{
		constants.OrderStatusConfirmed,
		constants.OrderStatusPending,
		constants.OrderStatusShipped,
		constants.OrderStatusCanceled,
	} {
		if _, err := svc.UpdateOrderStatus(order.ID, target); !errors.Is(err, ErrOrderStatusInvalid) {
			t.Fatalf("delivered->%s want ErrOrderStatusInvalid got %v", target, err)
		}
	}
}

func TestGetOrderOwnership(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	owner := seedTestUser(t, db, "owner@example.com")
	stranger := seedTestUser(t, db, "stranger@example.com")
	address := seedTestAddress(t, db, owner.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	order, err := svc.CreateOrder(CreateOrderInput{
		UserID:    owner.ID,
		AddressID: address.ID,
		Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	if _, err := svc.GetOrder(owner.ID, false, order.ID); err != nil {
		t.Fatalf("owner get order failed: %v", err)
	}
	if _, err := svc.GetOrder(stranger.ID, false, order.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger want ErrForbidden got %v", err)
	}
	if _, err := svc.GetOrder(0, true, order.ID); err != nil {
		t.Fatalf("admin get order failed: %v", err)
	}
	if _, err := svc.GetOrder(owner.ID, false, order.ID+99); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order want ErrOrderNotFound got %v", err)
	}
}

func TestGetUserOrdersPagination(t *testing.T) {
	db := setupServiceDB(t)
	svc := newOrderServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	address := seedTestAddress(t, db, user.ID)
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateOrder(CreateOrderInput{
			UserID:    user.ID,
			AddressID: address.ID,
			Items:     []CreateOrderItem{{ProductID: product.ID, Quantity: 1}},
		}); err != nil {
			t.Fatalf("create order %d failed: %v", i, err)
		}
	}

	orders, total, err := svc.GetUserOrders(user.ID, 1, 2)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total want 3 got %d", total)
	}
	if len(orders) != 2 {
		t.Fatalf("page size want 2 got %d", len(orders))
	}

	orders, _, err = svc.GetUserOrders(user.ID, 2, 2)
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("page 2 want 1 got %d", len(orders))
	}
}
