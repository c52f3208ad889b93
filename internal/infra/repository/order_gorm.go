package repository

import (
	"context"
	"fmt"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文と明細（orders_products）を一括作成
// customerは既存なので保存しない
func (r *OrderGormRepository) Create(ctx context.Context, in repo.CreateOrderInput) (model.Order, error) {
	order := model.Order{
		ID:            uuid.NewString(),
		CustomerID:    in.Customer.ID,
		OrderProducts: make([]model.OrderProduct, 0, len(in.Products)),
	}
	for _, item := range in.Products {
		order.OrderProducts = append(order.OrderProducts, model.OrderProduct{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	if err := r.db.WithContext(ctx).Omit("Customer").Create(&order).Error; err != nil {
		return model.Order{}, fmt.Errorf("create order: %w", err)
	}

	order.Customer = in.Customer
	return order, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("OrderProducts", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc").Order("id asc")
		}).
		Where("id = ?", orderID).
		First(&o).Error
	if isNotFound(err) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, fmt.Errorf("find order: %w", err)
	}
	return o, nil
}
