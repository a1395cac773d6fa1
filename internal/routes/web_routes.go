package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
)

// SetupWebRoutes 设置网页路由，登录状态保存在会话 Cookie 中
func SetupWebRoutes(router *gin.Engine, h *Handlers) {
	router.GET("/login", h.Auth.LoginPage)
	router.POST("/login", h.Auth.LoginSubmit)
	router.GET("/register", h.Auth.RegisterPage)
	router.POST("/register", h.Auth.RegisterSubmit)
	router.POST("/logout", h.Auth.LogoutSubmit)

	pages := router.Group("/")
	pages.Use(auth.SessionMiddleware())
	{
		pages.GET("/", h.Pages.Index)
		pages.GET("/stats", h.Stats.StatsPage)
		pages.GET("/about", h.Pages.About)
	}

	adminPages := router.Group("/")
	adminPages.Use(auth.SessionMiddleware(), auth.RequirePageRole(h.roleLookup(), models.RoleAdmin))
	{
		adminPages.GET("/add-form", h.Pages.AddForm)
		adminPages.POST("/add-train", h.Pages.AddTrain)
		adminPages.GET("/update-form/:id", h.Pages.UpdateForm)
		adminPages.POST("/update-train/:id", h.Pages.UpdateTrain)
		adminPages.POST("/delete-train/:id", h.Pages.DeleteTrain)
		adminPages.GET("/admin", h.Admin.AdminPage)
		adminPages.POST("/admin/update-role", h.Admin.UpdateRoleSubmit)
	}
}
