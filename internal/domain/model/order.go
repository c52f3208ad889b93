package model

import "time"

type Order struct {
	ID            string         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID    string         `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer      Customer       `gorm:"foreignKey:CustomerID" json:"customer"`
	OrderProducts []OrderProduct `gorm:"foreignKey:OrderID" json:"order_products"`
	CreatedAt     time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
