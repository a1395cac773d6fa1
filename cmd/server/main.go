package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
	"github.com/railway_station/internal/routes"
	"github.com/railway_station/internal/services"
	"github.com/railway_station/internal/web"
	"github.com/railway_station/pkg/db"
	"github.com/railway_station/pkg/email"
	"github.com/railway_station/pkg/logger"
	"github.com/railway_station/pkg/metrics"
)

// @title Railway Station API
// @version 1.0
// @description 车次时刻表、用户和统计接口
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// 加载配置
	configs.LoadConfig()
	cfg := configs.AppConfig

	slog.SetDefault(logger.New(cfg.Env))
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	metrics.Init()

	// 初始化数据库连接
	db.InitDB(cfg.DB)
	defer db.CloseDB()

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(web.MustTemplates())

	opts := routes.Options{DB: db.GetDB(), Logger: slog.Default()}
	// 未配置 SMTP 时 NewMailer 返回 nil，不能直接赋给接口
	if mailer := email.NewMailer(cfg.SMTP); mailer != nil {
		opts.Notifier = mailer
	}
	h := routes.SetupRoutes(router, opts)

	if err := seedAccounts(context.Background(), h.Users, cfg); err != nil {
		log.Fatalf("Failed to seed accounts: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}
	go func() {
		slog.Info("server starting", "port", cfg.ServerPort, "env", cfg.Env, "driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
}

// seedAccounts 首次启动时创建管理员和普通用户账号
func seedAccounts(ctx context.Context, users services.UserService, cfg configs.Configuration) error {
	accounts := []services.SeedAccount{
		{
			Username: cfg.SeedAdmin.Username,
			Password: cfg.SeedAdmin.Password,
			Email:    cfg.SeedAdmin.Email,
			Phone:    cfg.SeedAdmin.Phone,
			Role:     models.RoleAdmin,
		},
		{
			Username: cfg.SeedUser.Username,
			Password: cfg.SeedUser.Password,
			Email:    cfg.SeedUser.Email,
			Phone:    cfg.SeedUser.Phone,
			Role:     models.RoleUser,
		},
	}
	for _, account := range accounts {
		if account.Username == "" {
			continue
		}
		if _, err := users.EnsureUser(ctx, account); err != nil {
			return err
		}
	}
	return nil
}
