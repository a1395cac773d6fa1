package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
)

// SetupAuthRoutes 设置认证相关路由
func SetupAuthRoutes(router *gin.RouterGroup, h *Handlers) {
	// 公共认证路由组
	publicAuthGroup := router.Group("/auth")
	{
		// POST /api/auth/login
		publicAuthGroup.POST("/login", h.Auth.Login)
		// POST /api/auth/register
		publicAuthGroup.POST("/register", h.Auth.Register)
	}

	// 受保护的认证路由组
	protectedAuthGroup := router.Group("/auth")
	protectedAuthGroup.Use(auth.JWTMiddleware())
	{
		// POST /api/auth/logout
		protectedAuthGroup.POST("/logout", h.Auth.LogoutHandler)
	}
}
