package service

import (
	"strings"

	"github.com/shopease-next/internal/constants"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"

	"gorm.io/gorm"
)

// ReviewService 评价业务服务。
// 评分均值在同一事务内用 SQL 聚合重算，商品上的 rating 不会与评论集漂移。
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// List 商品评价列表（倒序，带作者）
func (s *ReviewService) List(productID uint) ([]models.Review, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return s.reviewRepo.ListByProduct(productID)
}

// Add 新增评价并重算商品均分
func (s *ReviewService) Add(userID, productID uint, rating int, comment string) (*models.Review, error) {
	if rating < constants.ReviewRatingMin || rating > constants.ReviewRatingMax {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: productID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		if err := reviewRepo.Create(review); err != nil {
			return err
		}
		return productRepo.RefreshRating(productID)
	})
	if err != nil {
		return nil, err
	}

	if user, err := s.userRepo.GetByID(userID); err == nil {
		review.User = user
	}
	return review, nil
}

// Delete 删除评价（作者或管理员），并重算商品均分
func (s *ReviewService) Delete(actorID uint, actorIsAdmin bool, reviewID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if !actorIsAdmin && review.UserID != actorID {
		return ErrForbidden
	}

	return models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		if err := reviewRepo.Delete(review.ID); err != nil {
			return err
		}
		return productRepo.RefreshRating(review.ProductID)
	})
}
