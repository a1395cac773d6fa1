package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
)

// SetupAdminRoutes 设置用户管理 API 路由，仅管理员可用
func SetupAdminRoutes(router *gin.RouterGroup, h *Handlers) {
	userRoutes := router.Group("/users")
	userRoutes.Use(auth.JWTMiddleware(), auth.RequireRole(h.roleLookup(), models.RoleAdmin))
	{
		userRoutes.GET("", h.Admin.ListUsers)
		userRoutes.PATCH("/:id/role", h.Admin.UpdateUserRole)
	}
}
