package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

// 注文者の保存・取得を約束
type CustomerRepository interface {
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)
	// 見つからなければErrNotFound
	FindByID(ctx context.Context, id string) (model.Customer, error)
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
}
