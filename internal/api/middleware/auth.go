package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-service/internal/auth"
	"github.com/d60-Lab/blog-service/pkg/response"
)

// ContextUserID 认证通过后写入 gin context 的 key
const ContextUserID = "user_id"

// Auth 受保护路由统一鉴权：缺失/畸形/过期/签名不符一律 401，
// 校验通过把 user_id 放进 context 供 handler 使用。
// 兼容裸 token 与 "Bearer <token>" 两种头格式。
func Auth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authorization header required")
			return
		}
		tokenStr := header
		if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
		userID, err := tokens.Verify(tokenStr)
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// UserID 取出鉴权后的用户身份
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
