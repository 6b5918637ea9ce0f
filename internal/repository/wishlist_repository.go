package repository

import (
	"errors"

	"github.com/shopease-next/internal/models"

	"gorm.io/gorm"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	ListByUser(userID uint) ([]models.WishlistEntry, error)
	GetByID(id uint) (*models.WishlistEntry, error)
	CountByUserAndProduct(userID, productID uint) (int64, error)
	Create(entry *models.WishlistEntry) error
	Delete(id uint) error
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// ListByUser 获取用户心愿单
func (r *GormWishlistRepository) ListByUser(userID uint) ([]models.WishlistEntry, error) {
	var entries []models.WishlistEntry
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByID 根据 ID 获取心愿单条目
func (r *GormWishlistRepository) GetByID(id uint) (*models.WishlistEntry, error) {
	var entry models.WishlistEntry
	if err := r.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

// CountByUserAndProduct 统计用户对某商品的收藏数
func (r *GormWishlistRepository) CountByUserAndProduct(userID, productID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.WishlistEntry{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建心愿单条目
func (r *GormWishlistRepository) Create(entry *models.WishlistEntry) error {
	return r.db.Create(entry).Error
}

// Delete 删除心愿单条目
func (r *GormWishlistRepository) Delete(id uint) error {
	return r.db.Delete(&models.WishlistEntry{}, id).Error
}
