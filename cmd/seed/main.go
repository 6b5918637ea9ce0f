package main

import (
	"time"

	"github.com/shopease-next/internal/config"
	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/logger"
	"github.com/shopease-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Description: "Phones, laptops and smart devices"},
		{Name: "Lifestyle", Description: "Everyday essentials"},
		{Name: "Accessories", Description: "Cables, cases and chargers"},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类 ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}

	// 添加演示商品
	products := []models.Product{
		{
			CategoryID:  categoryIDs["Electronics"],
			Name:        "Wireless Earbuds Pro",
			Description: "Active noise cancelling earbuds with 30h battery life.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(129.99)),
			Stock:       200,
			Images:      models.StringArray{"/uploads/demo/earbuds-1.jpg"},
		},
		{
			CategoryID:  categoryIDs["Electronics"],
			Name:        "Smart Watch S2",
			Description: "Fitness tracking, heart rate and sleep monitoring.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(199.00)),
			Stock:       120,
			Images:      models.StringArray{"/uploads/demo/watch-1.jpg"},
		},
		{
			CategoryID:  categoryIDs["Lifestyle"],
			Name:        "Insulated Tumbler 500ml",
			Description: "Keeps drinks hot for 12 hours, cold for 24.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(24.50)),
			Stock:       500,
			Images:      models.StringArray{"/uploads/demo/tumbler-1.jpg"},
		},
		{
			CategoryID:  categoryIDs["Accessories"],
			Name:        "USB-C Fast Charger 65W",
			Description: "GaN charger with dual USB-C ports.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(39.90)),
			Stock:       300,
			Images:      models.StringArray{"/uploads/demo/charger-1.jpg"},
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("name = ?", product.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Name, err)
			} else {
				stdLog.Printf("Created product: %s", product.Name)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Name)
		}
	}

	// 添加演示用户
	users := []struct {
		Name     string
		Email    string
		Password string
		Role     string
	}{
		{Name: "Demo User", Email: "demo@example.com", Password: "demo123456", Role: constants.RoleUser},
		{Name: "Store Admin", Email: "admin@example.com", Password: "admin123456", Role: constants.RoleAdmin},
	}
	for _, seed := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", seed.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", seed.Email)
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", seed.Email, err)
			continue
		}
		now := time.Now()
		user := models.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: string(hashed),
			Role:         seed.Role,
			Provider:     constants.UserProviderLocal,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", seed.Email, err)
		} else {
			stdLog.Printf("Created user: %s", seed.Email)
		}
	}

	stdLog.Printf("Seed finished")
}
