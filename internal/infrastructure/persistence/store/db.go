// Package store GORM仓储实现（PostgreSQL / MySQL / SQLite）
package store

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TheJisus28/bookstore-api/internal/infrastructure/config"
)

// NewDB 根据配置创建数据库连接
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	return Open(cfg.Database, log)
}

// Open 打开数据库连接
//  1. 按driver选择Dialector
//  2. 配置连接池
//  3. 注册查询观察插件（日志、指标、链路）
//  4. 按需AutoMigrate
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// SQL日志由QueryObserver输出
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// 内存库在最后一个连接关闭时消失，且SQLite只允许单写
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), pingTimeout(cfg))
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := db.Use(NewQueryObserver(log, cfg.SlowThreshold, cfg.LogParams)); err != nil {
		return nil, fmt.Errorf("注册查询观察插件失败: %w", err)
	}

	log.Info("数据库连接成功", zap.String("driver", cfg.Driver))

	if cfg.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

func openDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverMySQL:
		return mysql.Open(cfg.DSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", cfg.Driver)
	}
}

func pingTimeout(cfg config.DatabaseConfig) time.Duration {
	if cfg.ConnectTimeout > 0 {
		return cfg.ConnectTimeout
	}
	return 2 * time.Second
}

// models 全部数据模型，按外键依赖排序
func models() []any {
	return []any{
		&UserModel{},
		&AuthorModel{},
		&CategoryModel{},
		&PublisherModel{},
		&BookModel{},
		&BookAuthorModel{},
		&AddressModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
	}
}

// AutoMigrate 自动迁移表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(models()...)
}

// Ping 健康检查
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close 关闭连接池
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
