package service

import (
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// CartService 购物车业务服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart 获取用户购物车；不存在时返回空购物车而非错误
func (s *CartService) GetCart(userID uint) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}, nil
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return cart, nil
}

// AddItem 加入购物车：同商品已存在时原子累加数量，否则新增条目。
// 返回刷新后的完整购物车。
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	affected, err := s.cartRepo.IncrementItemQuantity(cart.ID, productID, quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.cartRepo.CreateItem(item); err != nil {
			// 并发插入撞唯一索引时退回累加路径
			if _, incErr := s.cartRepo.IncrementItemQuantity(cart.ID, productID, quantity); incErr != nil {
				return nil, err
			}
		}
	}

	return s.GetCart(userID)
}

// UpdateItem 覆盖购物车项数量（非累加）
func (s *CartService) UpdateItem(userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(userID, itemID uint) (*models.Cart, error) {
	item, err := s.ownedItem(userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.GetCart(userID)
}

// ClearCart 清空用户购物车
func (s *CartService) ClearCart(userID uint) error {
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.ClearByCart(cart.ID)
}

// ownedItem 取属于该用户购物车的条目；他人条目按不存在处理
func (s *CartService) ownedItem(userID, itemID uint) (*models.CartItem, error) {
	item, err := s.cartRepo.GetItemByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || item.CartID != cart.ID {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}
