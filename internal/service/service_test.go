package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupServiceDB 打开独立内存库并临时替换全局 DB，测试结束后恢复
func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })

	if err := models.AutoMigrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func seedTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Name:         strings.Split(email, "@")[0],
		Email:        email,
		PasswordHash: string(hashed),
		Role:         constants.RoleUser,
		Provider:     constants.UserProviderLocal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func seedTestCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return category
}

func seedTestProduct(t *testing.T, db *gorm.DB, categoryID uint, name, price string, stock int) *models.Product {
	t.Helper()
	amount, err := decimal.NewFromString(price)
	if err != nil {
		t.Fatalf("parse price failed: %v", err)
	}
	product := &models.Product{
		CategoryID: categoryID,
		Name:       name,
		Price:      models.NewMoneyFromDecimal(amount),
		Stock:      stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func seedTestAddress(t *testing.T, db *gorm.DB, userID uint) *models.Address {
	t.Helper()
	address := &models.Address{
		UserID:   userID,
		FullName: "Test Receiver",
		Line1:    "1 Demo Street",
		City:     "Springfield",
		Country:  "US",
	}
	if err := db.Create(address).Error; err != nil {
		t.Fatalf("seed address failed: %v", err)
	}
	return address
}

func mustMoneyEqual(t *testing.T, got models.Money, want string) {
	t.Helper()
	expected, err := decimal.NewFromString(want)
	if err != nil {
		t.Fatalf("parse expected amount failed: %v", err)
	}
	if !got.Decimal.Equal(expected) {
		t.Fatalf("amount want %s got %s", want, got.String())
	}
}
