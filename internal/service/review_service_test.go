package service

import (
	"errors"
	"math"
	"testing"

	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newReviewServiceForTest(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
		repository.NewUserRepository(db),
	)
}

func productRating(t *testing.T, db *gorm.DB, productID uint) float64 {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Rating
}

func TestAddReviewRecomputesAverageRating(t *testing.T) {
	db := setupServiceDB(t)
	svc := newReviewServiceForTest(db)

	alice := seedTestUser(t, db, "alice@example.com")
	bob := seedTestUser(t, db, "bob@example.com")
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	review, err := svc.Add(alice.ID, product.ID, 5, "  great sound  ")
	if err != nil {
		t.Fatalf("add review failed: %v", err)
	}
	if review.Comment != "great sound" {
		t.Fatalf("comment want trimmed got %q", review.Comment)
	}
	if review.User == nil || review.User.ID != alice.ID {
		t.Fatalf("expected review author attached")
	}
	if got := productRating(t, db, product.ID); got != 5 {
		t.Fatalf("rating want 5 got %v", got)
	}

	if _, err := svc.Add(bob.ID, product.ID, 2, "meh"); err != nil {
		t.Fatalf("add second review failed: %v", err)
	}
	if got := productRating(t, db, product.ID); math.Abs(got-3.5) > 1e-9 {
		t.Fatalf("rating want 3.5 got %v", got)
	}
}

func TestAddReviewValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newReviewServiceForTest(db)

	user := seedTestUser(t, db, "alice@example.com")
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	if _, err := svc.Add(user.ID, product.ID, 0, "x"); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("rating 0 want ErrInvalidRating got %v", err)
	}
	if _, err := svc.Add(user.ID, product.ID, 6, "x"); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("rating 6 want ErrInvalidRating got %v", err)
	}
	if _, err := svc.Add(user.ID, product.ID+99, 4, "x"); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("unknown product want ErrProductNotFound got %v", err)
	}
}

func TestDeleteReviewOwnershipAndRecompute(t *testing.T) {
	db := setupServiceDB(t)
	svc := newReviewServiceForTest(db)

	alice := seedTestUser(t, db, "alice@example.com")
	bob := seedTestUser(t, db, "bob@example.com")
	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	first, err := svc.Add(alice.ID, product.ID, 5, "great")
	if err != nil {
		t.Fatalf("add review failed: %v", err)
	}
	if _, err := svc.Add(bob.ID, product.ID, 1, "broken"); err != nil {
		t.Fatalf("add second review failed: %v", err)
	}

	// 非作者且非管理员不能删除
	if err := svc.Delete(bob.ID, false, first.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden got %v", err)
	}

	if err := svc.Delete(alice.ID, false, first.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
	if got := productRating(t, db, product.ID); got != 1 {
		t.Fatalf("rating after delete want 1 got %v", got)
	}

	reviews, err := svc.List(product.ID)
	if err != nil {
		t.Fatalf("list reviews failed: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("reviews want 1 got %d", len(reviews))
	}

	// 管理员可以删除任意评价；评论清空后评分归零
	if err := svc.Delete(0, true, reviews[0].ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if got := productRating(t, db, product.ID); got != 0 {
		t.Fatalf("rating after last delete want 0 got %v", got)
	}

	if err := svc.Delete(alice.ID, false, first.ID); !errors.Is(err, ErrReviewNotFound) {
		t.Fatalf("want ErrReviewNotFound got %v", err)
	}
}
