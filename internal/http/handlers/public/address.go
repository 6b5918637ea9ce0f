package public

import (
	"errors"
	"strconv"

	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 创建/更新地址请求
type AddressRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		FullName:   r.FullName,
		Phone:      r.Phone,
		Line1:      r.Line1,
		Line2:      r.Line2,
		City:       r.City,
		State:      r.State,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		IsDefault:  r.IsDefault,
	}
}

// ListAddresses 当前用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addresses, err := h.AddressService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.address_fetch_failed", err)
		return
	}
	result := make([]gin.H, 0, len(addresses))
	for i := range addresses {
		result = append(result, addressResponse(&addresses[i]))
	}
	response.Success(c, result)
}

// CreateAddress 创建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	address, err := h.AddressService.Create(uid, req.toInput())
	if err != nil {
		respondError(c, response.CodeInternal, "error.address_save_failed", err)
		return
	}
	response.Success(c, addressResponse(address))
}

// UpdateAddress 更新地址（仅限归属用户）
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	address, err := h.AddressService.Update(uid, uint(addressID), req.toInput())
	if err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, addressResponse(address))
}

// DeleteAddress 删除地址（仅限归属用户）
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	addressID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || addressID == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AddressService.Delete(uid, uint(addressID)); err != nil {
		respondAddressError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func respondAddressError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAddressNotFound):
		respondError(c, response.CodeNotFound, "error.address_not_found", nil)
	case errors.Is(err, service.ErrForbidden):
		respondError(c, response.CodeForbidden, "error.forbidden", nil)
	default:
		respondError(c, response.CodeInternal, "error.address_save_failed", err)
	}
}

func addressResponse(address *models.Address) gin.H {
	if address == nil {
		return gin.H{}
	}
	return gin.H{
		"id":          address.ID,
		"full_name":   address.FullName,
		"phone":       address.Phone,
		"line1":       address.Line1,
		"line2":       address.Line2,
		"city":        address.City,
		"state":       address.State,
		"postal_code": address.PostalCode,
		"country":     address.Country,
		"is_default":  address.IsDefault,
		"created_at":  address.CreatedAt,
	}
}
