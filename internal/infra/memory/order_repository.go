package memory

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	s    *Store
	inTx bool
}

func (r *orderRepository) Create(ctx context.Context, in repo.CreateOrderInput) (model.Order, error) {
	defer r.s.lock(r.inTx)()

	now := r.s.now()
	order := model.Order{
		ID:            uuid.NewString(),
		CustomerID:    in.Customer.ID,
		Customer:      in.Customer,
		OrderProducts: make([]model.OrderProduct, 0, len(in.Products)),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, item := range in.Products {
		order.OrderProducts = append(order.OrderProducts, model.OrderProduct{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Price:     item.Price,
			Quantity:  item.Quantity,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	r.s.st.orders[order.ID] = order
	return copyOrder(order), nil
}

func (r *orderRepository) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	defer r.s.lock(r.inTx)()

	o, ok := r.s.st.orders[orderID]
	if !ok {
		return model.Order{}, repo.ErrNotFound
	}
	if c, ok := r.s.st.customers[o.CustomerID]; ok {
		o.Customer = c
	}
	return copyOrder(o), nil
}

// 呼び出し側が明細を書き換えても保存済みの注文に影響しないようにコピーする
func copyOrder(o model.Order) model.Order {
	items := make([]model.OrderProduct, len(o.OrderProducts))
	copy(items, o.OrderProducts)
	o.OrderProducts = items
	return o
}

var _ repo.OrderRepository = (*orderRepository)(nil)
