package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/models"
)

// SetupTrainRoutes 设置车次 API 路由：读取需要登录，修改需要管理员
func SetupTrainRoutes(router *gin.RouterGroup, h *Handlers) {
	router.OPTIONS("/trains", h.Trains.OptionsTrains)
	router.OPTIONS("/trains/:id", h.Trains.OptionsTrain)

	trainRoutes := router.Group("/trains")
	trainRoutes.Use(auth.JWTMiddleware())
	{
		trainRoutes.GET("", h.Trains.ListTrains)
		trainRoutes.HEAD("", h.Trains.HeadTrains)
		trainRoutes.GET("/cities", h.Trains.ListCities)
		trainRoutes.GET("/export.xml", h.Trains.ExportXML)
		trainRoutes.GET("/:id", h.Trains.GetTrain)

		adminTrainRoutes := trainRoutes.Group("")
		adminTrainRoutes.Use(auth.RequireRole(h.roleLookup(), models.RoleAdmin))
		{
			adminTrainRoutes.POST("", h.Trains.CreateTrain)
			adminTrainRoutes.PUT("/:id", h.Trains.UpdateTrain)
			adminTrainRoutes.PATCH("/:id", h.Trains.PatchTrain)
			adminTrainRoutes.DELETE("/:id", h.Trains.DeleteTrain)
		}
	}

	router.GET("/stats", auth.JWTMiddleware(), h.Stats.GetStats)
}
