package service

import "errors"

// 业务错误哨兵，handler 层用 errors.Is 映射为响应码与文案键。
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrForbidden          = errors.New("forbidden")

	ErrCategoryExists   = errors.New("category name already exists")
	ErrCategoryInUse    = errors.New("category has associated products")
	ErrCategoryNotFound = errors.New("category not found")

	ErrProductNotFound = errors.New("product not found")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidStock    = errors.New("invalid stock")

	ErrInvalidQuantity  = errors.New("invalid quantity")
	ErrCartItemNotFound = errors.New("cart item not found")

	ErrWishlistExists   = errors.New("wishlist entry already exists")
	ErrWishlistNotFound = errors.New("wishlist entry not found")

	ErrInvalidRating  = errors.New("rating out of range")
	ErrReviewNotFound = errors.New("review not found")

	ErrAddressNotFound = errors.New("address not found")

	ErrInvalidOrderItem   = errors.New("invalid order item")
	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderStatusInvalid = errors.New("invalid order status transition")
	ErrOrderCreateFailed  = errors.New("order create failed")

	ErrPaymentNotFound = errors.New("payment not found")
)
