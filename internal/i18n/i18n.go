package i18n

import (
	"fmt"
	"strings"

	"github.com/shopease-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// messages 按语言维护的文案表；key 找不到时回退英文，再回退 key 本身
var messages = map[string]map[string]string{
	constants.LocaleEnUS: {
		"error.internal":               "internal server error",
		"error.invalid_request":        "invalid request",
		"error.unauthorized":           "unauthorized",
		"error.forbidden":              "forbidden",
		"error.not_found":              "resource not found",
		"error.jwt_secret_missing":     "authentication is not configured",
		"error.auth_header_missing":    "authorization header is missing",
		"error.auth_header_invalid":    "authorization header is invalid",
		"error.token_invalid":          "token is invalid or expired",
		"error.token_revoked":          "token has been revoked",
		"error.user_disabled":          "account is disabled",
		"error.rate_limit_unavailable": "rate limiter is unavailable",
		"error.rate_limited":           "too many requests, retry after %d seconds",
		"error.login_rate_limited":     "too many login attempts, retry after %d seconds",
		"error.invalid_credentials":    "email or password is incorrect",
		"error.email_exists":           "email is already registered",
		"error.invalid_email":          "email is invalid",
		"error.invalid_password":       "password must be at least 6 characters",
		"error.category_exists":        "category name already exists",
		"error.category_in_use":        "category still has products",
		"error.category_not_found":     "category not found",
		"error.product_not_found":      "product not found",
		"error.invalid_price":          "price is invalid",
		"error.invalid_stock":          "stock is invalid",
		"error.invalid_quantity":       "quantity must be positive",
		"error.cart_item_not_found":    "cart item not found",
		"error.wishlist_exists":        "product is already in wishlist",
		"error.wishlist_not_found":     "wishlist entry not found",
		"error.invalid_rating":         "rating must be between 1 and 5",
		"error.review_not_found":       "review not found",
		"error.address_not_found":      "address not found",
		"error.invalid_order_item":     "order items are invalid",
		"error.order_not_found":        "order not found",
		"error.order_status_invalid":   "order status transition is not allowed",
		"error.order_create_failed":    "failed to create order",
		"error.payment_not_found":      "payment not found",
		"error.bad_request":            "request could not be processed",
		"error.save_failed":            "failed to save changes",
		"error.register_failed":        "failed to register account",
		"error.login_failed":           "failed to sign in",
		"error.logout_failed":          "failed to sign out",
		"error.password_old_invalid":   "current password is incorrect",
		"error.admin_login_invalid":    "username or password is incorrect",
		"error.admin_id_invalid":       "admin identity is missing",
		"error.admin_id_type_invalid":  "admin identity is malformed",
		"error.user_id_invalid":        "user identity is missing",
		"error.user_id_type_invalid":   "user identity is malformed",
		"error.user_not_found":         "user not found",
		"error.user_fetch_failed":      "failed to load user",
		"error.user_update_failed":     "failed to update user",
		"error.category_fetch_failed":  "failed to load categories",
		"error.category_create_failed": "failed to create category",
		"error.category_update_failed": "failed to update category",
		"error.category_delete_failed": "failed to delete category",
		"error.product_fetch_failed":   "failed to load products",
		"error.product_create_failed":  "failed to create product",
		"error.product_update_failed":  "failed to update product",
		"error.product_delete_failed":  "failed to delete product",
		"error.cart_fetch_failed":      "failed to load cart",
		"error.cart_save_failed":       "failed to update cart",
		"error.wishlist_fetch_failed":  "failed to load wishlist",
		"error.wishlist_save_failed":   "failed to update wishlist",
		"error.review_fetch_failed":    "failed to load reviews",
		"error.review_save_failed":     "failed to save review",
		"error.address_fetch_failed":   "failed to load addresses",
		"error.address_save_failed":    "failed to save address",
		"error.order_fetch_failed":     "failed to load orders",
		"error.order_update_failed":    "failed to update order",
		"error.payment_failed":         "failed to process payment",
	},
	constants.LocaleZhCN: {
		"error.internal":               "服务器内部错误",
		"error.invalid_request":        "请求参数不合法",
		"error.unauthorized":           "未登录或登录已过期",
		"error.forbidden":              "没有权限执行该操作",
		"error.not_found":              "资源不存在",
		"error.jwt_secret_missing":     "认证服务未配置",
		"error.auth_header_missing":    "缺少认证头",
		"error.auth_header_invalid":    "认证头格式不正确",
		"error.token_invalid":          "令牌无效或已过期",
		"error.token_revoked":          "令牌已失效",
		"error.user_disabled":          "账号已被禁用",
		"error.rate_limit_unavailable": "限流服务不可用",
		"error.rate_limited":           "请求过于频繁，请 %d 秒后重试",
		"error.login_rate_limited":     "登录尝试过于频繁，请 %d 秒后重试",
		"error.invalid_credentials":    "邮箱或密码错误",
		"error.email_exists":           "邮箱已被注册",
		"error.invalid_email":          "邮箱格式不正确",
		"error.invalid_password":       "密码长度不能少于 6 位",
		"error.category_exists":        "分类名称已存在",
		"error.category_in_use":        "分类下仍有商品",
		"error.category_not_found":     "分类不存在",
		"error.product_not_found":      "商品不存在",
		"error.invalid_price":          "价格不合法",
		"error.invalid_stock":          "库存不合法",
		"error.invalid_quantity":       "数量必须为正数",
		"error.cart_item_not_found":    "购物车条目不存在",
		"error.wishlist_exists":        "商品已在心愿单中",
		"error.wishlist_not_found":     "心愿单条目不存在",
		"error.invalid_rating":         "评分必须在 1 到 5 之间",
		"error.review_not_found":       "评价不存在",
		"error.address_not_found":      "地址不存在",
		"error.invalid_order_item":     "订单项不合法",
		"error.order_not_found":        "订单不存在",
		"error.order_status_invalid":   "订单状态不允许该流转",
		"error.order_create_failed":    "创建订单失败",
		"error.payment_not_found":      "支付记录不存在",
		"error.bad_request":            "请求无法处理",
		"error.save_failed":            "保存失败",
		"error.register_failed":        "注册失败",
		"error.login_failed":           "登录失败",
		"error.logout_failed":          "登出失败",
		"error.password_old_invalid":   "当前密码不正确",
		"error.admin_login_invalid":    "用户名或密码错误",
		"error.admin_id_invalid":       "管理员身份缺失",
		"error.admin_id_type_invalid":  "管理员身份异常",
		"error.user_id_invalid":        "用户身份缺失",
		"error.user_id_type_invalid":   "用户身份异常",
		"error.user_not_found":         "用户不存在",
		"error.user_fetch_failed":      "获取用户失败",
		"error.user_update_failed":     "更新用户失败",
		"error.category_fetch_failed":  "获取分类失败",
		"error.category_create_failed": "创建分类失败",
		"error.category_update_failed": "更新分类失败",
		"error.category_delete_failed": "删除分类失败",
		"error.product_fetch_failed":   "获取商品失败",
		"error.product_create_failed":  "创建商品失败",
		"error.product_update_failed":  "更新商品失败",
		"error.product_delete_failed":  "删除商品失败",
		"error.cart_fetch_failed":      "获取购物车失败",
		"error.cart_save_failed":       "更新购物车失败",
		"error.wishlist_fetch_failed":  "获取心愿单失败",
		"error.wishlist_save_failed":   "更新心愿单失败",
		"error.review_fetch_failed":    "获取评价失败",
		"error.review_save_failed":     "保存评价失败",
		"error.address_fetch_failed":   "获取地址失败",
		"error.address_save_failed":    "保存地址失败",
		"error.order_fetch_failed":     "获取订单失败",
		"error.order_update_failed":    "更新订单失败",
		"error.payment_failed":         "处理支付失败",
	},
}

// T 按语言取文案；未命中依次回退英文、key 本身
func T(locale, key string) string {
	locale = normalizeLocale(locale)
	if table, ok := messages[locale]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[constants.LocaleEnUS][key]; ok {
		return msg
	}
	return key
}

// Sprintf 带参数格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 解析请求语言：lang 查询参数 > Accept-Language > 英文兜底
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return constants.LocaleEnUS
	}
	if lang := normalizeLocale(c.Query("lang")); lang != "" {
		return lang
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		candidate := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if lang := normalizeLocale(candidate); lang != "" {
			return lang
		}
	}
	return constants.LocaleEnUS
}

// normalizeLocale 把各种写法归一到支持的语言代码；不支持返回空串
func normalizeLocale(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	lower := strings.ToLower(strings.ReplaceAll(value, "_", "-"))
	switch {
	case strings.HasPrefix(lower, "zh"):
		return constants.LocaleZhCN
	case strings.HasPrefix(lower, "en"):
		return constants.LocaleEnUS
	}
	for _, locale := range constants.SupportedLocales {
		if strings.EqualFold(locale, value) {
			return locale
		}
	}
	return ""
}
