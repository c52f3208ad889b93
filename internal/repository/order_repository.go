package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type CreateOrderInput struct {
	Customer model.Customer
	Products []model.OrderLineItem
}

type OrderRepository interface {
	// 注文と明細を保存し、採番済みの注文を返す
	Create(ctx context.Context, in CreateOrderInput) (model.Order, error)
	FindByID(ctx context.Context, orderID string) (model.Order, error)
}
