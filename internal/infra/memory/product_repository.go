package memory

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	s    *Store
	inTx bool
}

func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	defer r.s.lock(r.inTx)()

	for _, existing := range r.s.st.products {
		if existing.Name == p.Name {
			return model.Product{}, repo.ErrDuplicate
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, ok := r.s.st.products[p.ID]; ok {
		return model.Product{}, repo.ErrDuplicate
	}

	now := r.s.now()
	p.CreatedAt = now
	p.UpdatedAt = now
	r.s.st.products[p.ID] = p
	r.s.st.productIDs = append(r.s.st.productIDs, p.ID)
	return p, nil
}

func (r *productRepository) FindByName(ctx context.Context, name string) (model.Product, error) {
	defer r.s.lock(r.inTx)()

	for _, p := range r.s.st.products {
		if p.Name == name {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

// 作成順で返す
func (r *productRepository) FindAllByID(ctx context.Context, ids []string) ([]model.Product, error) {
	defer r.s.lock(r.inTx)()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	out := make([]model.Product, 0, len(ids))
	for _, id := range r.s.st.productIDs {
		if _, ok := want[id]; ok {
			out = append(out, r.s.st.products[id])
		}
	}
	return out, nil
}

// 全件のversionを確認してから反映する（途中まで書かれることはない）
func (r *productRepository) UpdateQuantity(ctx context.Context, products []model.Product) error {
	defer r.s.lock(r.inTx)()

	for _, p := range products {
		current, ok := r.s.st.products[p.ID]
		if !ok || current.Version != p.Version {
			return repo.ErrStockConflict
		}
	}

	now := r.s.now()
	for _, p := range products {
		current := r.s.st.products[p.ID]
		current.Quantity = p.Quantity
		current.Version++
		current.UpdatedAt = now
		r.s.st.products[p.ID] = current
	}
	return nil
}

var _ repo.ProductRepository = (*productRepository)(nil)
