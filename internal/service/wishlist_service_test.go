package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newWishlistServiceForTest(db *gorm.DB) *WishlistService {
	return NewWishlistService(
		repository.NewWishlistRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestAddWishlistEntryRejectsDuplicate(t *testing.T) {
	db := setupServiceDB(t)
	svc := newWishlistServiceForTest(db)

	user := seedTestUser(t, db, "buyer@example.com")
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	entry, err := svc.Add(user.ID, product.ID)
	if err != nil {
		t.Fatalf("add wishlist entry failed: %v", err)
	}
	if entry.Product == nil || entry.Product.ID != product.ID {
		t.Fatalf("expected product attached to entry")
	}

	if _, err := svc.Add(user.ID, product.ID); !errors.Is(err, ErrWishlistExists) {
		t.Fatalf("duplicate want ErrWishlistExists got %v", err)
	}
	if _, err := svc.Add(user.ID, product.ID+99); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
}

func TestRemoveWishlistEntryOwnership(t *testing.T) {
	db := setupServiceDB(t)
	svc := newWishlistServiceForTest(db)

	owner := seedTestUser(t, db, "owner@example.com")
	stranger := seedTestUser(t, db, "stranger@example.com")
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	entry, err := svc.Add(owner.ID, product.ID)
	if err != nil {
		t.Fatalf("add wishlist entry failed: %v", err)
	}

	// 他人条目按不存在处理
	if err := svc.Remove(stranger.ID, entry.ID); !errors.Is(err, ErrWishlistNotFound) {
		t.Fatalf("stranger remove want ErrWishlistNotFound got %v", err)
	}

	if err := svc.Remove(owner.ID, entry.ID); err != nil {
		t.Fatalf("owner remove failed: %v", err)
	}
	list, err := svc.List(owner.ID)
	if err != nil {
		t.Fatalf("list wishlist failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("wishlist want empty got %d entries", len(list))
	}
}
