package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")

	// ユニーク制約違反（email・商品名など）
	ErrDuplicate = errors.New("duplicate")

	// 在庫の書き戻し時にversionが変わっていた
	ErrStockConflict = errors.New("stock version conflict")
)
