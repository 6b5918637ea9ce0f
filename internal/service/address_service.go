package service

import (
	"strings"

	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
)

// AddressService 收货地址业务服务
type AddressService struct {
	repo repository.AddressRepository
}

// NewAddressService 创建地址服务
func NewAddressService(repo repository.AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// AddressInput 创建/更新地址输入
type AddressInput struct {
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	IsDefault  bool
}

// List 用户地址列表
func (s *AddressService) List(userID uint) ([]models.Address, error) {
	return s.repo.ListByUser(userID)
}

// Create 创建地址
func (s *AddressService) Create(userID uint, input AddressInput) (*models.Address, error) {
	address := models.Address{
		UserID:     userID,
		FullName:   strings.TrimSpace(input.FullName),
		Phone:      strings.TrimSpace(input.Phone),
		Line1:      strings.TrimSpace(input.Line1),
		Line2:      strings.TrimSpace(input.Line2),
		City:       strings.TrimSpace(input.City),
		State:      strings.TrimSpace(input.State),
		PostalCode: strings.TrimSpace(input.PostalCode),
		Country:    strings.TrimSpace(input.Country),
		IsDefault:  input.IsDefault,
	}
	if err := s.repo.Create(&address); err != nil {
		return nil, err
	}
	return &address, nil
}

// Update 更新地址（仅限归属用户）
func (s *AddressService) Update(userID, addressID uint, input AddressInput) (*models.Address, error) {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return nil, err
	}

	address.FullName = strings.TrimSpace(input.FullName)
	address.Phone = strings.TrimSpace(input.Phone)
	address.Line1 = strings.TrimSpace(input.Line1)
	address.Line2 = strings.TrimSpace(input.Line2)
	address.City = strings.TrimSpace(input.City)
	address.State = strings.TrimSpace(input.State)
	address.PostalCode = strings.TrimSpace(input.PostalCode)
	address.Country = strings.TrimSpace(input.Country)
	address.IsDefault = input.IsDefault

	if err := s.repo.Update(address); err != nil {
		return nil, err
	}
	return address, nil
}

// Delete 删除地址（仅限归属用户）
func (s *AddressService) Delete(userID, addressID uint) error {
	address, err := s.ownedAddress(userID, addressID)
	if err != nil {
		return err
	}
	return s.repo.Delete(address.ID)
}

// ownedAddress 取归属该用户的地址；存在但属于他人时返回 Forbidden
func (s *AddressService) ownedAddress(userID, addressID uint) (*models.Address, error) {
	address, err := s.repo.GetByID(addressID)
	if err != nil {
		return nil, err
	}
	if address == nil {
		return nil, ErrAddressNotFound
	}
	if address.UserID != userID {
		return nil, ErrForbidden
	}
	return address, nil
}
