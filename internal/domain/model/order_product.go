package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細
// Priceは注文時点の商品価格（スナップショット）
type OrderProduct struct {
	ID        string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string          `gorm:"type:uuid;not null;index" json:"product_id"`
	Price     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (OrderProduct) TableName() string {
	return "orders_products"
}
