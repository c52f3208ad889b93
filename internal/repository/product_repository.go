package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 商品と在庫の永続化を約束。
type ProductRepository interface {
	Create(ctx context.Context, p model.Product) (model.Product, error)
	FindByName(ctx context.Context, name string) (model.Product, error)

	// idsに一致する商品だけを返す（存在しないidは無視）
	// トランザクション内では行ロックを取る
	FindAllByID(ctx context.Context, ids []string) ([]model.Product, error)

	// 在庫をまとめて書き戻す。Versionが読み取り時と違えばErrStockConflict
	UpdateQuantity(ctx context.Context, products []model.Product) error
}
