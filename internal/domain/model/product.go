package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品と現在の在庫
// Versionは在庫を書き戻すたびに+1（楽観ロック）
type Product struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Version   int64           `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
