package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductServiceForTest(db *gorm.DB) *ProductService {
	return NewProductService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
	)
}

func TestCreateProductValidation(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductServiceForTest(db)

	category := seedTestCategory(t, db, "Electronics")

	if _, err := svc.Create(ProductInput{
		Name:       "Earbuds",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(-1)),
		CategoryID: category.ID,
	}); !errors.Is(err, ErrInvalidPrice) {
		t.Fatalf("negative price want ErrInvalidPrice got %v", err)
	}

	if _, err := svc.Create(ProductInput{
		Name:       "Earbuds",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		Stock:      -5,
		CategoryID: category.ID,
	}); !errors.Is(err, ErrInvalidStock) {
		t.Fatalf("negative stock want ErrInvalidStock got %v", err)
	}

	if _, err := svc.Create(ProductInput{
		Name:       "Earbuds",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
		CategoryID: category.ID + 99,
	}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("unknown category want ErrCategoryNotFound got %v", err)
	}

	created, err := svc.Create(ProductInput{
		Name:       "  Earbuds  ",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(10.5)),
		Stock:      20,
		CategoryID: category.ID,
		Images:     []string{"/uploads/a.jpg"},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if created.Name != "Earbuds" {
		t.Fatalf("name want trimmed got %q", created.Name)
	}
	mustMoneyEqual(t, created.Price, "10.50")
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	db := setupServiceDB(t)
	svc := newProductServiceForTest(db)

	category := seedTestCategory(t, db, "Electronics")
	product := seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	updated, err := svc.Update(product.ID, ProductInput{
		Name:       "Earbuds Pro",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(15.99)),
		Stock:      50,
		CategoryID: category.ID,
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Name != "Earbuds Pro" || updated.Stock != 50 {
		t.Fatalf("unexpected product after update: %+v", updated)
	}
	mustMoneyEqual(t, updated.Price, "15.99")

	if _, err := svc.Update(product.ID+99, ProductInput{
		Name:       "Ghost",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(1)),
		CategoryID: category.ID,
	}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("missing product want ErrProductNotFound got %v", err)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := svc.Get(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("deleted product want ErrProductNotFound got %v", err)
	}
	if err := svc.Delete(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("double delete want ErrProductNotFound got %v", err)
	}
}
