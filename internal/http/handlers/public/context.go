package public

import (
	"github.com/shopease-next/internal/constants"
	handlershared "github.com/shopease-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, key, invalidKey, typeInvalidKey)
}

func getUserID(c *gin.Context) (uint, bool) {
	return getContextUintWithKeys(c, "user_id", "error.user_id_invalid", "error.user_id_type_invalid")
}

// isAdminRole 当前请求是否带管理员角色（由认证中间件写入）
func isAdminRole(c *gin.Context) bool {
	value, ok := c.Get("user_role")
	if !ok {
		return false
	}
	role, ok := value.(string)
	return ok && role == constants.RoleAdmin
}
