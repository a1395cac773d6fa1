package routes

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/railway_station/configs"
	_ "github.com/railway_station/docs" // 注册 swagger 文档
	"github.com/railway_station/internal/auth"
	"github.com/railway_station/internal/handlers"
	"github.com/railway_station/internal/middleware"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/repositories"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/pkg/metrics"
)

// Options 组装路由所需的外部依赖
type Options struct {
	DB       *gorm.DB
	Logger   *slog.Logger
	Notifier handlers.RegistrationNotifier // 可以为 nil
	Now      func() time.Time
}

// Handlers 汇总所有 HTTP 处理器
type Handlers struct {
	Trains *handlers.TrainHandler
	Pages  *handlers.TrainPageHandler
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler
	Stats  *handlers.StatsHandler
	Users  services.UserService
}

// NewHandlers 按 仓库 -> 服务 -> 处理器 的顺序组装
func NewHandlers(opts Options) *Handlers {
	trainRepo := repositories.NewGormTrainRepository(opts.DB)
	userRepo := repositories.NewGormUserRepository(opts.DB)

	trainService := services.NewTrainService(trainRepo, opts.Now)
	userService := services.NewUserService(userRepo, auth.NewBcryptHasher(0))
	statsService := services.NewStatsService(userRepo, trainRepo)

	return &Handlers{
		Trains: handlers.NewTrainHandler(trainService),
		Pages:  handlers.NewTrainPageHandler(trainService),
		Auth:   handlers.NewAuthHandler(userService, opts.Notifier),
		Admin:  handlers.NewAdminHandler(userService),
		Stats:  handlers.NewStatsHandler(statsService),
		Users:  userService,
	}
}

// roleLookup 权限检查以存储中的角色为准，降级后旧 Token 立即失去管理员权限
func (h *Handlers) roleLookup() auth.RoleLookup {
	return func(ctx context.Context, username string) (models.Role, error) {
		creds, err := h.Users.AuthenticateLookup(ctx, username)
		if err != nil {
			return "", err
		}
		return creds.Role, nil
	}
}

// SetupRoutes 初始化所有路由，返回组装好的处理器。调用前需要先加载 configs.AppConfig
func SetupRoutes(router *gin.Engine, opts Options) *Handlers {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	h := NewHandlers(opts)

	// CORS 放在引擎级别，预检请求不依赖具体路由
	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(opts.Logger),
		metrics.GinMiddleware(),
		middleware.CORS(configs.AppConfig.CORS.AllowedOrigins),
	)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	SetupAuthRoutes(api, h)
	SetupTrainRoutes(api, h)
	SetupAdminRoutes(api, h)

	SetupWebRoutes(router, h)
	return h
}
