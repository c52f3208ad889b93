package model

import "github.com/shopspring/decimal"

// 注文作成前のカート明細（まだ永続化されていない）
type OrderLineItem struct {
	ProductID string
	Price     decimal.Decimal
	Quantity  int64
}
