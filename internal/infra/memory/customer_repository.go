package memory

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/google/uuid"
)

type customerRepository struct {
	s    *Store
	inTx bool
}

func (r *customerRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	defer r.s.lock(r.inTx)()

	for _, existing := range r.s.st.customers {
		if existing.Email == c.Email {
			return model.Customer{}, repo.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, ok := r.s.st.customers[c.ID]; ok {
		return model.Customer{}, repo.ErrDuplicate
	}

	now := r.s.now()
	c.CreatedAt = now
	c.UpdatedAt = now
	r.s.st.customers[c.ID] = c
	return c, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id string) (model.Customer, error) {
	defer r.s.lock(r.inTx)()

	c, ok := r.s.st.customers[id]
	if !ok {
		return model.Customer{}, repo.ErrNotFound
	}
	return c, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	defer r.s.lock(r.inTx)()

	for _, c := range r.s.st.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return model.Customer{}, repo.ErrNotFound
}

var _ repo.CustomerRepository = (*customerRepository)(nil)
