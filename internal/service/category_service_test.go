package service

import (
	"errors"
	"testing"

	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

func newCategoryServiceForTest(db *gorm.DB) *CategoryService {
	return NewCategoryService(repository.NewCategoryRepository(db))
}

func TestCreateCategoryUniqueName(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCategoryServiceForTest(db)

	created, err := svc.Create(CategoryInput{Name: "  Electronics ", Description: " gadgets "})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if created.Name != "Electronics" || created.Description != "gadgets" {
		t.Fatalf("expected trimmed fields, got %+v", created)
	}

	if _, err := svc.Create(CategoryInput{Name: "Electronics"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("duplicate name want ErrCategoryExists got %v", err)
	}
}

func TestUpdateCategoryRejectsDuplicateName(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCategoryServiceForTest(db)

	electronics := seedTestCategory(t, db, "Electronics")
	seedTestCategory(t, db, "Lifestyle")

	if _, err := svc.Update(electronics.ID, CategoryInput{Name: "Lifestyle"}); !errors.Is(err, ErrCategoryExists) {
		t.Fatalf("rename to existing want ErrCategoryExists got %v", err)
	}

	updated, err := svc.Update(electronics.ID, CategoryInput{Name: "Gadgets", Description: "renamed"})
	if err != nil {
		t.Fatalf("update category failed: %v", err)
	}
	if updated.Name != "Gadgets" || updated.Description != "renamed" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := setupServiceDB(t)
	svc := newCategoryServiceForTest(db)

	category := seedTestCategory(t, db, "Electronics")
	seedTestProduct(t, db, category.ID, "Earbuds", "10.50", 100)

	// 仍有商品引用的分类不能删除
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("want ErrCategoryInUse got %v", err)
	}

	empty := seedTestCategory(t, db, "Lifestyle")
	if err := svc.Delete(empty.ID); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
	if _, err := svc.Get(empty.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted category want ErrNotFound got %v", err)
	}
}
