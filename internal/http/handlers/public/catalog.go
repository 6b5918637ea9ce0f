package public

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/shopease-next/internal/http/handlers/shared"
	"github.com/shopease-next/internal/http/response"
	"github.com/shopease-next/internal/models"
	"github.com/shopease-next/internal/repository"
	"github.com/shopease-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ListCategories 公开分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	result := make([]gin.H, 0, len(categories))
	for i := range categories {
		result = append(result, categoryResponse(&categories[i]))
	}
	response.Success(c, result)
}

// ListProducts 公开商品列表，支持分类名、关键词、价格区间与最低评分过滤
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryName: strings.TrimSpace(c.Query("category")),
		Search:       strings.TrimSpace(c.Query("search")),
		WithCategory: true,
	}
	if raw := strings.TrimSpace(c.Query("price_min")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		money := models.NewMoneyFromDecimal(value)
		filter.PriceMin = &money
	}
	if raw := strings.TrimSpace(c.Query("price_max")); raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		money := models.NewMoneyFromDecimal(value)
		filter.PriceMax = &money
	}
	if raw := strings.TrimSpace(c.Query("min_rating")); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.MinRating = &value
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	result := make([]gin.H, 0, len(products))
	for i := range products {
		result = append(result, productResponse(&products[i]))
	}
	response.SuccessWithPage(c, result, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetProduct 公开商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	product, err := h.ProductService.Get(uint(id))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		}
		return
	}
	response.Success(c, productResponse(product))
}

func categoryResponse(category *models.Category) gin.H {
	if category == nil {
		return gin.H{}
	}
	return gin.H{
		"id":          category.ID,
		"name":        category.Name,
		"description": category.Description,
		"created_at":  category.CreatedAt,
	}
}

func productResponse(product *models.Product) gin.H {
	if product == nil {
		return gin.H{}
	}
	result := gin.H{
		"id":          product.ID,
		"category_id": product.CategoryID,
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"images":      product.Images,
		"rating":      product.Rating,
		"created_at":  product.CreatedAt,
	}
	if product.Category.ID != 0 {
		result["category"] = categoryResponse(&product.Category)
	}
	return result
}
