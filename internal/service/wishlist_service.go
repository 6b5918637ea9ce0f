package service

import (
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// WishlistService 心愿单业务服务
type WishlistService struct {
	repo        repository.WishlistRepository
	productRepo repository.ProductRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(repo repository.WishlistRepository, productRepo repository.ProductRepository) *WishlistService {
	return &WishlistService{repo: repo, productRepo: productRepo}
}

// List 获取用户心愿单（带商品信息）
func (s *WishlistService) List(userID uint) ([]models.WishlistEntry, error) {
	return s.repo.ListByUser(userID)
}

// Add 收藏商品；重复收藏返回冲突
func (s *WishlistService) Add(userID, productID uint) (*models.WishlistEntry, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	count, err := s.repo.CountByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrWishlistExists
	}

	entry := &models.WishlistEntry{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, err
	}
	entry.Product = product
	return entry, nil
}

// Remove 移除收藏；他人条目按不存在处理
func (s *WishlistService) Remove(userID, entryID uint) error {
	entry, err := s.repo.GetByID(entryID)
	if err != nil {
		return err
	}
	if entry == nil || entry.UserID != userID {
		return ErrWishlistNotFound
	}
	return s.repo.Delete(entry.ID)
}
