package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	customers repo.CustomerRepository
	products  repo.ProductRepository
	orders    repo.OrderRepository
}

func (r *txReposGorm) Customers() repo.CustomerRepository { return r.customers }
func (r *txReposGorm) Products() repo.ProductRepository   { return r.products }
func (r *txReposGorm) Orders() repo.OrderRepository       { return r.orders }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			customers: NewCustomerGormRepository(tx),
			products:  NewProductGormRepository(tx),
			orders:    NewOrderGormRepository(tx),
		}
		return fn(r)
	})
}
