package repository

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/shopease-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupProductRepoTest(t *testing.T) (*gorm.DB, *GormProductRepository) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Review{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db, NewProductRepository(db)
}

func seedFilterFixtures(t *testing.T, db *gorm.DB) {
	t.Helper()
	electronics := models.Category{Name: "Electronics"}
	lifestyle := models.Category{Name: "Lifestyle"}
	if err := db.Create(&electronics).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	if err := db.Create(&lifestyle).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}

	products := []models.Product{
		{CategoryID: electronics.ID, Name: "Wireless Earbuds", Description: "noise cancelling", Price: money(t, "129.99"), Rating: 4.5},
		{CategoryID: electronics.ID, Name: "Smart Watch", Description: "fitness tracking", Price: money(t, "199.00"), Rating: 3.0},
		{CategoryID: lifestyle.ID, Name: "Tumbler", Description: "insulated bottle", Price: money(t, "24.50"), Rating: 4.8},
		{CategoryID: lifestyle.ID, Name: "Notebook", Description: "wireless charging pad bundle", Price: money(t, "9.90"), Rating: 0},
	}
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("seed product failed: %v", err)
		}
	}
}

func money(t *testing.T, value string) models.Money {
	t.Helper()
	amount, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse amount failed: %v", err)
	}
	return models.NewMoneyFromDecimal(amount)
}

func moneyPtr(t *testing.T, value string) *models.Money {
	t.Helper()
	m := money(t, value)
	return &m
}

func TestProductListFilterByCategoryName(t *testing.T) {
	db, repo := setupProductRepoTest(t)
	seedFilterFixtures(t, db)

	products, total, err := repo.List(ProductListFilter{CategoryName: "Electronics", WithCategory: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("want 2 electronics products, total=%d len=%d", total, len(products))
	}
	for _, product := range products {
		if product.Category.Name != "Electronics" {
			t.Fatalf("expected category preloaded, got %+v", product.Category)
		}
	}

	_, total, err = repo.List(ProductListFilter{CategoryName: "Nonexistent"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("unknown category want 0 got %d", total)
	}
}

func TestProductListFilterBySearch(t *testing.T) {
	db, repo := setupProductRepoTest(t)
	seedFilterFixtures(t, db)

	// 搜索同时匹配名称与描述
	products, total, err := repo.List(ProductListFilter{Search: "wireless"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("search wireless want 2 got %d", total)
	}
	names := map[string]bool{}
	for _, product := range products {
		names[product.Name] = true
	}
	if !names["Wireless Earbuds"] || !names["Notebook"] {
		t.Fatalf("unexpected search results: %v", names)
	}
}

func TestProductListFilterByPriceRange(t *testing.T) {
	db, repo := setupProductRepoTest(t)
	seedFilterFixtures(t, db)

	products, total, err := repo.List(ProductListFilter{
		PriceMin: moneyPtr(t, "20.00"),
		PriceMax: moneyPtr(t, "150.00"),
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("price range want 2 got %d", total)
	}
	for _, product := range products {
		if product.Price.Decimal.LessThan(decimal.NewFromInt(20)) || product.Price.Decimal.GreaterThan(decimal.NewFromInt(150)) {
			t.Fatalf("product %s price %s out of range", product.Name, product.Price.String())
		}
	}
}

func TestProductListFilterByMinRating(t *testing.T) {
	db, repo := setupProductRepoTest(t)
	seedFilterFixtures(t, db)

	minRating := 4.0
	products, total, err := repo.List(ProductListFilter{MinRating: &minRating})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("min rating want 2 got %d", total)
	}
	for _, product := range products {
		if product.Rating < minRating {
			t.Fatalf("product %s rating %v below threshold", product.Name, product.Rating)
		}
	}
}

func TestProductListPagination(t *testing.T) {
	db, repo := setupProductRepoTest(t)
	seedFilterFixtures(t, db)

	products, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 3})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 4 {
		t.Fatalf("total want 4 got %d", total)
	}
	if len(products) != 3 {
		t.Fatalf("page 1 want 3 got %d", len(products))
	}

	products, _, err = repo.List(ProductListFilter{Page: 2, PageSize: 3})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("page 2 want 1 got %d", len(products))
	}
}

func TestRefreshRatingAggregatesReviews(t *testing.T) {
	db, repo := setupProductRepoTest(t)

	category := models.Category{Name: "Electronics"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	product := models.Product{CategoryID: category.ID, Name: "Earbuds", Price: money(t, "10.50")}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}

	reviews := []models.Review{
		{UserID: 1, ProductID: product.ID, Rating: 5},
		{UserID: 2, ProductID: product.ID, Rating: 2},
	}
	if err := db.Create(&reviews).Error; err != nil {
		t.Fatalf("seed reviews failed: %v", err)
	}

	if err := repo.RefreshRating(product.ID); err != nil {
		t.Fatalf("refresh rating failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if math.Abs(reloaded.Rating-3.5) > 1e-9 {
		t.Fatalf("rating want 3.5 got %v", reloaded.Rating)
	}

	// 软删除的评价不计入均值
	if err := db.Delete(&reviews[0]).Error; err != nil {
		t.Fatalf("soft delete review failed: %v", err)
	}
	if err := repo.RefreshRating(product.ID); err != nil {
		t.Fatalf("refresh rating failed: %v", err)
	}
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Rating != 2 {
		t.Fatalf("rating want 2 got %v", reloaded.Rating)
	}

	// 评论清空后归零
	if err := db.Delete(&reviews[1]).Error; err != nil {
		t.Fatalf("soft delete review failed: %v", err)
	}
	if err := repo.RefreshRating(product.ID); err != nil {
		t.Fatalf("refresh rating failed: %v", err)
	}
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Rating != 0 {
		t.Fatalf("rating want 0 got %v", reloaded.Rating)
	}
}
