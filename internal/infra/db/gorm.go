package db

import (
	"fmt"

	"marketplace/internal/config"
	"marketplace/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{}
	if cfg.IsProduction() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return gormDB, nil
}

// Migrate はテーブルを作成・更新する。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.Customer{},
		&model.Product{},
		&model.Order{},
		&model.OrderProduct{},
	)
}
