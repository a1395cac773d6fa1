package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/models"
	"github.com/railway_station/pkg/utils"
)

// RoleLookup 按用户名查询存储中的当前角色
type RoleLookup func(ctx context.Context, username string) (models.Role, error)

// CurrentRole 返回认证中间件写入的角色
func CurrentRole(c *gin.Context) models.Role {
	role, _ := c.Get(ContextRole)
	r, _ := role.(models.Role)
	return r
}

// CurrentUsername 返回认证中间件写入的用户名
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// hasRole lookup 不为 nil 时以存储中的角色为准并回写上下文，Token 中的角色可能已过时
func hasRole(c *gin.Context, lookup RoleLookup, roles []models.Role) bool {
	if lookup != nil {
		role, err := lookup(c.Request.Context(), CurrentUsername(c))
		if err != nil {
			slog.WarnContext(c.Request.Context(), "role lookup failed", "username", CurrentUsername(c), "error", err)
			return false
		}
		c.Set(ContextRole, role)
	}
	current := CurrentRole(c)
	for _, r := range roles {
		if current == r {
			return true
		}
	}
	return false
}

// RequireRole 必须放在 JWTMiddleware 之后，角色不符返回 403
func RequireRole(lookup RoleLookup, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, lookup, roles) {
			utils.RespondForbiddenError(c, "Access denied")
			return
		}
		c.Next()
	}
}

// RequirePageRole 必须放在 SessionMiddleware 之后，角色不符渲染 403 页面
func RequirePageRole(lookup RoleLookup, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !hasRole(c, lookup, roles) {
			c.HTML(http.StatusForbidden, "error.html", gin.H{
				"Title":    "Access denied",
				"Message":  "You do not have permission to open this page.",
				"Username": CurrentUsername(c),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
