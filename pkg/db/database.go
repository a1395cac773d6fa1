package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/railway_station/configs"
	"github.com/railway_station/internal/models"
)

var gormDB *gorm.DB

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func gormLogLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// Open 按配置建立 GORM 连接并完成表结构迁移，不修改全局实例
func Open(cfg configs.DatabaseConfig) (*gorm.DB, error) {
	// 配置 GORM 日志级别
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // 慢 SQL 阈值
			LogLevel:                  gormLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,  // 忽略ErrRecordNotFound（记录未找到）错误
			Colorful:                  false, // 禁用彩色打印
		},
	)
	gormCfg := &gorm.Config{Logger: newLogger}

	var (
		gdb *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		if cfg.Migrate {
			if err := RunMigrations(cfg.PostgresDSN); err != nil {
				return nil, err
			}
		}
		gdb, err = gorm.Open(postgres.Open(cfg.PostgresDSN), gormCfg)
	case DriverSQLite, "":
		if err := ensureDir(cfg.SQLitePath); err != nil {
			return nil, err
		}
		gdb, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB from GORM: %w", err)
	}
	// 设置数据库连接池参数
	if cfg.Driver == DriverPostgres {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		// SQLite 只允许单写者，内存库还要求所有请求共享同一连接
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	// PostgreSQL 的表结构由 SQL 迁移维护，SQLite 使用 AutoMigrate
	if cfg.Driver != DriverPostgres {
		if err := AutoMigrate(gdb); err != nil {
			return nil, err
		}
	}
	return gdb, nil
}

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(&models.User{}, &models.Train{}); err != nil {
		return fmt.Errorf("failed to auto migrate database tables: %w", err)
	}
	return nil
}

func ensureDir(dbPath string) error {
	if dbPath == "" || dbPath == ":memory:" || filepath.Dir(dbPath) == "." {
		return nil
	}
	// 确保数据库文件所在的目录存在
	dbDir := filepath.Dir(dbPath)
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		log.Printf("Database directory %s does not exist, creating it...", dbDir)
		if mkErr := os.MkdirAll(dbDir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create database directory %s: %w", dbDir, mkErr)
		}
	}
	return nil
}

// InitDB 初始化全局 GORM 数据库连接
func InitDB(cfg configs.DatabaseConfig) {
	var err error
	gormDB, err = Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialise database (%s): %v", cfg.Driver, err)
	}
	log.Printf("Successfully connected to %s database using GORM.", cfg.Driver)
}

// GetDB 返回 GORM 数据库实例
func GetDB() *gorm.DB {
	if gormDB == nil {
		log.Fatal("Database not initialized. Call InitDB first.")
	}
	return gormDB
}

// CloseDB 关闭 GORM 数据库连接 (通常在应用退出时调用)
func CloseDB() {
	if gormDB != nil {
		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Printf("Error getting underlying sql.DB for closing: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
		log.Println("Database connection closed.")
	}
}
